package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/pilot/pkg/event"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerCalendarMonthTool(srv, svc)
	registerAgendaTool(srv, svc)
	registerAddEventTool(srv, svc)
	registerCompleteMilestoneTool(srv, svc)
	registerAdvanceWeekTool(srv, svc)
	registerListAIGoalsTool(srv, svc)
	registerListCollectionsTool(srv, svc)
}

func categoryNames() []string {
	cats := event.AllCategories()
	out := make([]string, 0, len(cats))
	for _, c := range cats {
		out = append(out, string(c))
	}
	return out
}

func registerCalendarMonthTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"calendar_month",
		mcp.WithDescription("Lay out a month as six weeks of days, Sunday first, with the events of each day."),
		mcp.WithString("month",
			mcp.Description("Month as YYYY-MM or 'January 2024'. Defaults to the displayed month."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.CalendarMonth(request.GetString("month", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerAgendaTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"agenda",
		mcp.WithDescription("List the events of one day."),
		mcp.WithString("date",
			mcp.Description("Day as YYYY-MM-DD. Defaults to the selected day."),
		),
		mcp.WithBoolean("sort_by_start",
			mcp.Description("Order by start time instead of creation order."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.Agenda(request.GetString("date", ""), request.GetBool("sort_by_start", false))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerAddEventTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_event",
		mcp.WithDescription("Create a calendar event."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Event title."),
		),
		mcp.WithString("date",
			mcp.Description("Day as YYYY-MM-DD. Defaults to the selected day."),
		),
		mcp.WithString("start_time",
			mcp.Required(),
			mcp.Description("Start as HH:MM."),
		),
		mcp.WithString("end_time",
			mcp.Required(),
			mcp.Description("End as HH:MM, after the start."),
		),
		mcp.WithString("category",
			mcp.Description("Event category."),
			mcp.Enum(categoryNames()...),
		),
		mcp.WithString("description",
			mcp.Description("Optional notes."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Title       string `json:"title"`
			Date        string `json:"date"`
			Start       string `json:"start_time"`
			End         string `json:"end_time"`
			Category    string `json:"category"`
			Description string `json:"description"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.AddEvent(ctx, AddEventOptions(args))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerCompleteMilestoneTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"complete_milestone",
		mcp.WithDescription("Complete an unlocked milestone of an AI goal."),
		mcp.WithString("goal_id",
			mcp.Required(),
			mcp.Description("AI goal identifier."),
		),
		mcp.WithString("milestone_id",
			mcp.Required(),
			mcp.Description("Milestone identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		goalID, err := request.RequireString("goal_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		milestoneID, err := request.RequireString("milestone_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		g, err := svc.CompleteMilestone(ctx, goalID, milestoneID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(g)
	})
}

func registerAdvanceWeekTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"advance_week",
		mcp.WithDescription("Move an AI goal to its next week, unlocking that week's milestones."),
		mcp.WithString("goal_id",
			mcp.Required(),
			mcp.Description("AI goal identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		goalID, err := request.RequireString("goal_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		g, err := svc.AdvanceWeek(ctx, goalID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(g)
	})
}

func registerListAIGoalsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_ai_goals",
		mcp.WithDescription("List AI goals with milestones, progress and coach messages."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		goals, err := svc.AIGoals()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"goals": goals,
			"count": len(goals),
		})
	})
}

func registerListCollectionsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_collections",
		mcp.WithDescription("List planner collections with item counts."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		summaries, err := svc.ListCollections(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"collections": summaries,
			"count":       len(summaries),
		})
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}

package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerCollectionsResource(srv, svc)
	registerMonthTemplate(srv, svc)
	registerAIGoalTemplate(srv, svc)
}

func registerCollectionsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"pilot://collections",
		"Collections",
		mcp.WithResourceDescription("Planner collections with item counts."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		summaries, err := svc.ListCollections(ctx)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"collections": summaries,
			"count":       len(summaries),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerMonthTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"pilot://calendar/{month}",
		"Calendar Month",
		mcp.WithTemplateDescription("Six week grid of a month given as YYYY-MM."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		month, _ := request.Params.Arguments["month"].(string)
		if month == "" {
			return nil, fmt.Errorf("month is required")
		}

		dto, err := svc.CalendarMonth(month)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, dto)
	})
}

func registerAIGoalTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"pilot://ai-goals/{id}",
		"AI Goal",
		mcp.WithTemplateDescription("One AI goal with milestones and coach messages."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id, _ := request.Params.Arguments["id"].(string)
		if id == "" {
			return nil, fmt.Errorf("ai goal id is required")
		}

		g, err := svc.AIGoal(id)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{"goal": g})
	})
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

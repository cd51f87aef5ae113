// Package info prints where the planner keeps its data.
package info

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/pilot/pkg/store"
)

type Info struct {
	Config      store.Config
	Persistence store.Persistence
	Out         io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("PILOT_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "PILOT_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, "PILOT_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Planner"), n.Config.BasePath())
	tbl.AddRow(bold.Sprint("Directory"), n.Config.DirectoryPath())
	tbl.AddRow(bold.Sprint("Session"), n.Config.SessionPath())
	tbl.AddRow(bold.Sprint("Admins"), len(n.Config.Admins()))
	tbl.AddRow(bold.Sprint("Log level"), n.Config.LogLevel())
	tbl.AddRow(bold.Sprint("Listen"), n.Config.Addr())
	_, _ = fmt.Fprintln(out, tbl)

	if n.Persistence == nil {
		return errors.New("info: no persistence")
	}

	_, _ = fmt.Fprintln(out, "Collections:")
	metas := n.Persistence.CollectionsMeta(ctx)
	if len(metas) == 0 {
		_, _ = fmt.Fprintln(out, "  no collections")
	}
	for _, m := range metas {
		_, _ = fmt.Fprintf(out, "  %-10s %d\n", m.Name, m.Count)
	}
	return nil
}

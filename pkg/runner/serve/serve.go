// Package serve runs the HTTP API.
package serve

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"

	"tableflip.dev/pilot/pkg/server"
)

// DefaultAddr is used when no listen address is configured.
const DefaultAddr = "127.0.0.1:8080"

type Serve struct {
	Server *server.Server
	Addr   string
	Debug  bool
	Out    io.Writer
}

func (n *Serve) Do(ctx context.Context) error {
	if n.Server == nil || n.Server.Planners == nil || n.Server.Planners.Open == nil {
		return errors.New("serve: no planner service")
	}
	if n.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	addr := n.Addr
	if addr == "" {
		addr = DefaultAddr
	}
	if n.Out != nil {
		_, _ = fmt.Fprintf(n.Out, "Serving on http://%s (ctrl+c to stop)\n", addr)
	}
	return n.Server.Run(ctx, addr)
}

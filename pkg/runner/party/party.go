// Package party records answers to party invites.
package party

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/pilot/pkg/app"
	"tableflip.dev/pilot/pkg/printers"
	"tableflip.dev/pilot/pkg/social"
)

// Respond sets a friend's invite status and prints the resolved party.
type Respond struct {
	App      *app.Service
	PartyID  string
	FriendID string
	Status   string
	JSON     bool
	Out      io.Writer
}

func (n *Respond) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("party: no planner service")
	}
	status, err := social.ParseStatus(n.Status)
	if err != nil {
		return err
	}
	p, err := n.App.RespondParty(ctx, n.PartyID, n.FriendID, status)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, p)
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.NewLine()
	pp.Parties([]*social.Party{p})
	return nil
}

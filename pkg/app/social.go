package app

import (
	"context"
	"fmt"

	"tableflip.dev/pilot/pkg/collection"
	"tableflip.dev/pilot/pkg/social"
)

// AddParty validates and stores a party.
func (s *Service) AddParty(ctx context.Context, p *social.Party) (*social.Party, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	sess := s.session()
	sess.mu.Lock()
	defer sess.mu.Unlock()
	cp := p.Clone()
	if err := s.save(ctx, collection.TypeParties, cp.ID, cp); err != nil {
		return nil, err
	}
	sess.parties = append(sess.parties, cp)
	s.log().Info("party added", "id", cp.ID, "title", cp.Title, "invites", len(cp.Invites))
	return cp.Clone(), nil
}

// RespondParty records a friend's answer to a party invite.
func (s *Service) RespondParty(ctx context.Context, partyID, friendID string, status social.Status) (*social.Party, error) {
	sess := s.session()
	sess.mu.Lock()
	defer sess.mu.Unlock()
	i := indexOf(sess.parties, partyID, func(p *social.Party) string { return p.ID })
	if i < 0 {
		return nil, fmt.Errorf("%w: party %s", ErrNotFound, partyID)
	}
	cp := sess.parties[i].Clone()
	if err := cp.Respond(friendID, status, s.now()); err != nil {
		return nil, err
	}
	if err := s.save(ctx, collection.TypeParties, cp.ID, cp); err != nil {
		return nil, err
	}
	sess.parties[i] = cp
	return cp.Clone(), nil
}

// AddFriend validates and stores a friend.
func (s *Service) AddFriend(ctx context.Context, f *social.Friend) (*social.Friend, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	sess := s.session()
	sess.mu.Lock()
	defer sess.mu.Unlock()
	cp := *f
	if err := s.save(ctx, collection.TypeFriends, cp.ID, &cp); err != nil {
		return nil, err
	}
	sess.friends = append(sess.friends, &cp)
	out := cp
	return &out, nil
}

// FriendSeen marks a friend online.
func (s *Service) FriendSeen(ctx context.Context, id string) (*social.Friend, error) {
	sess := s.session()
	sess.mu.Lock()
	defer sess.mu.Unlock()
	i := indexOf(sess.friends, id, func(f *social.Friend) string { return f.ID })
	if i < 0 {
		return nil, fmt.Errorf("%w: friend %s", ErrNotFound, id)
	}
	cp := *sess.friends[i]
	cp.Seen(s.now())
	if err := s.save(ctx, collection.TypeFriends, cp.ID, &cp); err != nil {
		return nil, err
	}
	sess.friends[i] = &cp
	out := cp
	return &out, nil
}

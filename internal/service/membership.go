package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Innovatorone/InnoBOOKweb/internal/logger"
	"github.com/Innovatorone/InnoBOOKweb/internal/model"
)

// Membership serves the membership collections of every kind.
type Membership struct {
	stores map[model.Kind]model.MembershipStore
	logger *logger.Logger
}

func NewMembership(stores map[model.Kind]model.MembershipStore, logger *logger.Logger) *Membership {
	return &Membership{
		stores: stores,
		logger: logger,
	}
}

func (s *Membership) store(kind model.Kind) (model.MembershipStore, error) {
	store, ok := s.stores[kind]
	if !ok {
		return nil, fmt.Errorf("%w: collection kind %q is not served", model.ErrInvalidArgument, kind)
	}
	return store, nil
}

// ListMembers returns the member IDs of userID's collection, newest first.
func (s *Membership) ListMembers(ctx context.Context, userID uuid.UUID, kind model.Kind) ([]uuid.UUID, error) {
	store, err := s.store(kind)
	if err != nil {
		return nil, err
	}

	memberships, err := store.ListMembers(ctx, userID)
	if err != nil {
		s.logger.Error("Membership service: failed to list members",
			"kind", kind,
			"user_id", userID,
			"error", err.Error())
		return nil, fmt.Errorf("failed to list %s: %w", kind, err)
	}

	ids := make([]uuid.UUID, 0, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.MemberID)
	}
	return ids, nil
}

// AddMember puts memberID into userID's collection. Adding twice is not an error.
func (s *Membership) AddMember(ctx context.Context, userID uuid.UUID, kind model.Kind, memberID uuid.UUID) error {
	store, err := s.store(kind)
	if err != nil {
		return err
	}

	if err := store.Add(ctx, userID, memberID); err != nil {
		s.logger.Error("Membership service: failed to add member",
			"kind", kind,
			"user_id", userID,
			"member_id", memberID,
			"error", err.Error())
		return fmt.Errorf("failed to add to %s: %w", kind, err)
	}

	s.logger.Debug("Membership service: member added",
		"kind", kind,
		"user_id", userID,
		"member_id", memberID)
	return nil
}

// RemoveMember takes memberID out of userID's collection. Removing an absent
// member is not an error.
func (s *Membership) RemoveMember(ctx context.Context, userID uuid.UUID, kind model.Kind, memberID uuid.UUID) error {
	store, err := s.store(kind)
	if err != nil {
		return err
	}

	if err := store.Remove(ctx, userID, memberID); err != nil {
		s.logger.Error("Membership service: failed to remove member",
			"kind", kind,
			"user_id", userID,
			"member_id", memberID,
			"error", err.Error())
		return fmt.Errorf("failed to remove from %s: %w", kind, err)
	}

	s.logger.Debug("Membership service: member removed",
		"kind", kind,
		"user_id", userID,
		"member_id", memberID)
	return nil
}

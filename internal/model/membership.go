package model

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kind names a membership collection.
type Kind string

const (
	// KindBookmarks holds the books a user bookmarked.
	KindBookmarks Kind = "bookmarks"
	// KindReviewLikes holds the reviews a user liked.
	KindReviewLikes Kind = "review_likes"
)

// Kinds lists every supported collection kind.
var Kinds = []Kind{KindBookmarks, KindReviewLikes}

// ParseKind validates a collection kind name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: unknown collection kind %q", ErrInvalidArgument, s)
}

// MembershipStore persists membership facts of one kind.
// Add and Remove are idempotent.
type MembershipStore interface {
	ListMembers(ctx context.Context, userID uuid.UUID) ([]Membership, error)
	Add(ctx context.Context, userID, memberID uuid.UUID) error
	Remove(ctx context.Context, userID, memberID uuid.UUID) error
}

// Membership is a single "member is in the owner's collection" fact.
type Membership struct {
	UserID    uuid.UUID
	MemberID  uuid.UUID
	CreatedAt time.Time
}

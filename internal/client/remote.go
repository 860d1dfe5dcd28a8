package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Innovatorone/InnoBOOKweb/internal/api/grpc/bookbitespb"
	"github.com/Innovatorone/InnoBOOKweb/internal/model"
)

// Remote is the server side of one collection kind. It satisfies
// collection.Remote[uuid.UUID].
//
// The server derives the owner from the access token, so every call first
// checks that identity still matches the credentials. A store bound to an
// identity that has since signed out gets model.ErrUnauthorized instead of
// another reader's data.
type Remote struct {
	kind   model.Kind
	client *Client
}

// FetchMembers lists the member ids of the signed-in reader's collection.
func (r *Remote) FetchMembers(ctx context.Context, identity uuid.UUID) ([]uuid.UUID, error) {
	if err := r.checkIdentity(identity); err != nil {
		return nil, err
	}

	resp, err := r.client.collections.ListMembers(ctx, bookbitespb.NewKindRequest(string(r.kind)))
	if err != nil {
		return nil, fromStatus(err)
	}

	raw, err := bookbitespb.ParseStringList(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s members: %w", r.kind, err)
	}

	members := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("server returned invalid member id %q: %w", s, err)
		}
		members = append(members, id)
	}
	return members, nil
}

// AddMembership puts member into the collection. Adding a present member is not an error.
func (r *Remote) AddMembership(ctx context.Context, identity uuid.UUID, member uuid.UUID) error {
	if err := r.checkIdentity(identity); err != nil {
		return err
	}
	_, err := r.client.collections.AddMember(ctx, r.request(member))
	return fromStatus(err)
}

// RemoveMembership takes member out of the collection. Removing an absent member is not an error.
func (r *Remote) RemoveMembership(ctx context.Context, identity uuid.UUID, member uuid.UUID) error {
	if err := r.checkIdentity(identity); err != nil {
		return err
	}
	_, err := r.client.collections.RemoveMember(ctx, r.request(member))
	return fromStatus(err)
}

func (r *Remote) request(member uuid.UUID) *structpb.Struct {
	return bookbitespb.MemberRequest{Kind: string(r.kind), MemberID: member.String()}.Struct()
}

func (r *Remote) checkIdentity(identity uuid.UUID) error {
	if identity == uuid.Nil || r.client.creds.Identity() != identity {
		return model.ErrUnauthorized
	}
	return nil
}

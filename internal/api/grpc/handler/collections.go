package handler

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Innovatorone/InnoBOOKweb/internal/api/grpc/bookbitespb"
	"github.com/Innovatorone/InnoBOOKweb/internal/logger"
	"github.com/Innovatorone/InnoBOOKweb/internal/model"
)

// MembershipService defines operations on membership collections.
type MembershipService interface {
	ListMembers(ctx context.Context, userID uuid.UUID, kind model.Kind) ([]uuid.UUID, error)
	AddMember(ctx context.Context, userID uuid.UUID, kind model.Kind, memberID uuid.UUID) error
	RemoveMember(ctx context.Context, userID uuid.UUID, kind model.Kind, memberID uuid.UUID) error
}

// Collections handles gRPC endpoints for bookmarks and review likes.
type Collections struct {
	membershipService MembershipService
	contextManager    model.ContextManager
	logger            *logger.Logger
}

var _ bookbitespb.CollectionsServer = (*Collections)(nil)

// NewCollections creates a new Collections handler.
func NewCollections(membershipService MembershipService, contextManager model.ContextManager, logger *logger.Logger) *Collections {
	return &Collections{
		membershipService: membershipService,
		contextManager:    contextManager,
		logger:            logger,
	}
}

// ListMembers returns the member IDs of the caller's collection.
func (h *Collections) ListMembers(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error) {
	userID, err := model.RequireReader(ctx, h.contextManager)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, err.Error())
	}

	rawKind, err := bookbitespb.ParseKindRequest(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	kind, err := model.ParseKind(rawKind)
	if err != nil {
		return nil, handleError(err)
	}

	ids, err := h.membershipService.ListMembers(ctx, userID, kind)
	if err != nil {
		h.logger.Error("Collections handler: list members failed",
			"user_id", userID,
			"kind", kind,
			"error", err.Error())
		return nil, handleError(err)
	}

	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}

	h.logger.Debug("Collections handler: members listed",
		"user_id", userID,
		"kind", kind,
		"count", len(out))

	return bookbitespb.StringList(out), nil
}

// AddMember puts a member into the caller's collection.
func (h *Collections) AddMember(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	userID, kind, memberID, err := h.parseMemberRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := h.membershipService.AddMember(ctx, userID, kind, memberID); err != nil {
		return nil, handleError(err)
	}
	return &emptypb.Empty{}, nil
}

// RemoveMember takes a member out of the caller's collection.
func (h *Collections) RemoveMember(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	userID, kind, memberID, err := h.parseMemberRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := h.membershipService.RemoveMember(ctx, userID, kind, memberID); err != nil {
		return nil, handleError(err)
	}
	return &emptypb.Empty{}, nil
}

func (h *Collections) parseMemberRequest(ctx context.Context, req *structpb.Struct) (uuid.UUID, model.Kind, uuid.UUID, error) {
	userID, err := model.RequireReader(ctx, h.contextManager)
	if err != nil {
		return uuid.Nil, "", uuid.Nil, status.Error(codes.Unauthenticated, err.Error())
	}

	in, err := bookbitespb.ParseMemberRequest(req)
	if err != nil {
		return uuid.Nil, "", uuid.Nil, status.Error(codes.InvalidArgument, err.Error())
	}
	kind, err := model.ParseKind(in.Kind)
	if err != nil {
		return uuid.Nil, "", uuid.Nil, handleError(err)
	}
	memberID, err := uuid.Parse(in.MemberID)
	if err != nil {
		return uuid.Nil, "", uuid.Nil, status.Error(codes.InvalidArgument, "invalid member id format")
	}

	return userID, kind, memberID, nil
}

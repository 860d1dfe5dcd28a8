package handler

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Innovatorone/InnoBOOKweb/internal/api/grpc/bookbitespb"
	"github.com/Innovatorone/InnoBOOKweb/internal/mocks"
	"github.com/Innovatorone/InnoBOOKweb/internal/model"
	"github.com/Innovatorone/InnoBOOKweb/internal/testutil"
)

func TestCollections_ListMembers(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	ids := []uuid.UUID{uuid.New(), uuid.New()}

	svc := mocks.NewMembershipService(t)
	cm := mocks.NewContextManager(t)

	cm.On("ReaderFromContext", mock.Anything).Return(userID, true)
	svc.On("ListMembers", mock.Anything, userID, model.KindBookmarks).Return(ids, nil)

	h := NewCollections(svc, cm, testutil.MakeNoopLogger())
	out, err := h.ListMembers(context.Background(), bookbitespb.NewKindRequest("bookmarks"))
	require.NoError(t, err)

	got, err := bookbitespb.ParseStringList(out)
	require.NoError(t, err)
	assert.Equal(t, []string{ids[0].String(), ids[1].String()}, got)
}

func TestCollections_ListMembers_Errors(t *testing.T) {
	t.Parallel()

	t.Run("unauthenticated", func(t *testing.T) {
		t.Parallel()
		cm := mocks.NewContextManager(t)
		cm.On("ReaderFromContext", mock.Anything).Return(uuid.Nil, false)

		h := NewCollections(mocks.NewMembershipService(t), cm, testutil.MakeNoopLogger())
		_, err := h.ListMembers(context.Background(), bookbitespb.NewKindRequest("bookmarks"))
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("unknown kind", func(t *testing.T) {
		t.Parallel()
		cm := mocks.NewContextManager(t)
		cm.On("ReaderFromContext", mock.Anything).Return(uuid.New(), true)

		h := NewCollections(mocks.NewMembershipService(t), cm, testutil.MakeNoopLogger())
		_, err := h.ListMembers(context.Background(), bookbitespb.NewKindRequest("playlists"))
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("service failure", func(t *testing.T) {
		t.Parallel()
		userID := uuid.New()
		cm := mocks.NewContextManager(t)
		cm.On("ReaderFromContext", mock.Anything).Return(userID, true)
		svc := mocks.NewMembershipService(t)
		svc.On("ListMembers", mock.Anything, userID, model.KindReviewLikes).Return(nil, assert.AnError)

		h := NewCollections(svc, cm, testutil.MakeNoopLogger())
		_, err := h.ListMembers(context.Background(), bookbitespb.NewKindRequest("review_likes"))
		assert.Equal(t, codes.Internal, status.Code(err))
	})
}

func TestCollections_AddRemoveMember(t *testing.T) {
	t.Parallel()

	userID, bookID := uuid.New(), uuid.New()
	req := bookbitespb.MemberRequest{Kind: "bookmarks", MemberID: bookID.String()}.Struct()

	svc := mocks.NewMembershipService(t)
	cm := mocks.NewContextManager(t)

	cm.On("ReaderFromContext", mock.Anything).Return(userID, true)
	svc.On("AddMember", mock.Anything, userID, model.KindBookmarks, bookID).Return(nil).Once()
	svc.On("RemoveMember", mock.Anything, userID, model.KindBookmarks, bookID).Return(nil).Once()

	h := NewCollections(svc, cm, testutil.MakeNoopLogger())

	out, err := h.AddMember(context.Background(), req)
	require.NoError(t, err)
	assert.NotNil(t, out)

	out, err = h.RemoveMember(context.Background(), req)
	require.NoError(t, err)
	assert.NotNil(t, out)
}

func TestCollections_AddMember_Errors(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("invalid member id", func(t *testing.T) {
		t.Parallel()
		cm := mocks.NewContextManager(t)
		cm.On("ReaderFromContext", mock.Anything).Return(userID, true)

		h := NewCollections(mocks.NewMembershipService(t), cm, testutil.MakeNoopLogger())
		_, err := h.AddMember(context.Background(), bookbitespb.MemberRequest{Kind: "bookmarks", MemberID: "book-42"}.Struct())
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("missing member", func(t *testing.T) {
		t.Parallel()
		cm := mocks.NewContextManager(t)
		cm.On("ReaderFromContext", mock.Anything).Return(userID, true)

		h := NewCollections(mocks.NewMembershipService(t), cm, testutil.MakeNoopLogger())
		_, err := h.RemoveMember(context.Background(), bookbitespb.NewKindRequest("bookmarks"))
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("unknown book", func(t *testing.T) {
		t.Parallel()
		bookID := uuid.New()
		cm := mocks.NewContextManager(t)
		cm.On("ReaderFromContext", mock.Anything).Return(userID, true)
		svc := mocks.NewMembershipService(t)
		svc.On("AddMember", mock.Anything, userID, model.KindBookmarks, bookID).Return(model.ErrNotFound)

		h := NewCollections(svc, cm, testutil.MakeNoopLogger())
		_, err := h.AddMember(context.Background(), bookbitespb.MemberRequest{Kind: "bookmarks", MemberID: bookID.String()}.Struct())
		assert.Equal(t, codes.NotFound, status.Code(err))
	})
}

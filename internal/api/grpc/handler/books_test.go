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

func TestBooks_GetBooks(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	svc := mocks.NewCatalogService(t)
	svc.On("GetBooks", mock.Anything, []uuid.UUID{id}).Return([]model.Book{
		{ID: id, Title: "Mehrobdan chayon", Author: "Abdulla Qodiriy", CoverURL: "http://minio/c.jpg", Rating: 4.7},
	}, nil)

	h := NewBooks(svc, testutil.MakeNoopLogger())
	out, err := h.GetBooks(context.Background(), bookbitespb.StringList([]string{id.String()}))
	require.NoError(t, err)

	books, err := bookbitespb.ParseBookList(out)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, id.String(), books[0].ID)
	assert.Equal(t, "http://minio/c.jpg", books[0].CoverURL)
	assert.InDelta(t, 4.7, books[0].Rating, 0.0001)
}

func TestBooks_GetBooks_Errors(t *testing.T) {
	t.Parallel()

	t.Run("invalid id", func(t *testing.T) {
		t.Parallel()
		h := NewBooks(mocks.NewCatalogService(t), testutil.MakeNoopLogger())
		_, err := h.GetBooks(context.Background(), bookbitespb.StringList([]string{"nope"}))
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("too many ids", func(t *testing.T) {
		t.Parallel()
		ids := make([]string, maxBooksPerRequest+1)
		for i := range ids {
			ids[i] = uuid.NewString()
		}
		h := NewBooks(mocks.NewCatalogService(t), testutil.MakeNoopLogger())
		_, err := h.GetBooks(context.Background(), bookbitespb.StringList(ids))
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("service failure", func(t *testing.T) {
		t.Parallel()
		svc := mocks.NewCatalogService(t)
		svc.On("GetBooks", mock.Anything, mock.Anything).Return(nil, assert.AnError)

		h := NewBooks(svc, testutil.MakeNoopLogger())
		_, err := h.GetBooks(context.Background(), bookbitespb.StringList([]string{uuid.NewString()}))
		assert.Equal(t, codes.Internal, status.Code(err))
	})
}

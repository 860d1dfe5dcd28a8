package handler

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Innovatorone/InnoBOOKweb/internal/api/grpc/bookbitespb"
	"github.com/Innovatorone/InnoBOOKweb/internal/logger"
	"github.com/Innovatorone/InnoBOOKweb/internal/model"
)

// maxBooksPerRequest bounds GetBooks requests.
const maxBooksPerRequest = 200

// CatalogService resolves book summaries.
type CatalogService interface {
	GetBooks(ctx context.Context, ids []uuid.UUID) ([]model.Book, error)
}

// Books handles gRPC endpoints for the book catalog.
type Books struct {
	catalogService CatalogService
	logger         *logger.Logger
}

var _ bookbitespb.BooksServer = (*Books)(nil)

// NewBooks creates a new Books handler.
func NewBooks(catalogService CatalogService, logger *logger.Logger) *Books {
	return &Books{
		catalogService: catalogService,
		logger:         logger,
	}
}

// GetBooks returns summaries of the requested books.
func (h *Books) GetBooks(ctx context.Context, req *structpb.ListValue) (*structpb.ListValue, error) {
	raw, err := bookbitespb.ParseStringList(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if len(raw) > maxBooksPerRequest {
		return nil, status.Errorf(codes.InvalidArgument, "at most %d books per request", maxBooksPerRequest)
	}

	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, "invalid book id format")
		}
		ids = append(ids, id)
	}

	books, err := h.catalogService.GetBooks(ctx, ids)
	if err != nil {
		h.logger.Error("Books handler: get books failed",
			"count", len(ids),
			"error", err.Error())
		return nil, handleError(err)
	}

	out := make([]bookbitespb.Book, 0, len(books))
	for _, b := range books {
		out = append(out, bookbitespb.Book{
			ID:        b.ID.String(),
			Title:     b.Title,
			Author:    b.Author,
			CoverURL:  b.CoverURL,
			Rating:    b.Rating,
			IsPremium: b.IsPremium,
		})
	}
	return bookbitespb.BookList(out), nil
}

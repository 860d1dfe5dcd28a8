package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Innovatorone/InnoBOOKweb/internal/logger"
	"github.com/Innovatorone/InnoBOOKweb/internal/model"
)

// Catalog lists books with cover URLs resolved for the client.
type Catalog struct {
	bookStore model.BookStore
	covers    model.CoverStorage
	urlTTL    time.Duration
	logger    *logger.Logger
}

func NewCatalog(bookStore model.BookStore, covers model.CoverStorage, urlTTL time.Duration, logger *logger.Logger) *Catalog {
	return &Catalog{
		bookStore: bookStore,
		covers:    covers,
		urlTTL:    urlTTL,
		logger:    logger,
	}
}

// GetBooks returns the books with the given IDs. A cover that cannot be
// presigned is left without URL.
func (c *Catalog) GetBooks(ctx context.Context, ids []uuid.UUID) ([]model.Book, error) {
	books, err := c.bookStore.GetByIDs(ctx, ids)
	if err != nil {
		c.logger.Error("Catalog service: failed to get books",
			"count", len(ids),
			"error", err.Error())
		return nil, fmt.Errorf("failed to get books: %w", err)
	}

	for i := range books {
		books[i].CoverURL = c.coverURL(ctx, books[i])
	}
	return books, nil
}

func (c *Catalog) coverURL(ctx context.Context, book model.Book) string {
	key := book.CoverKey
	switch {
	case key == "":
		return ""
	case strings.HasPrefix(key, "http://"), strings.HasPrefix(key, "https://"):
		return key
	}

	url, err := c.covers.PresignedURL(ctx, key, c.urlTTL)
	if err != nil {
		c.logger.Warn("Catalog service: failed to presign cover",
			"book_id", book.ID,
			"key", key,
			"error", err.Error())
		return ""
	}
	return url
}

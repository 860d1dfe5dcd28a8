package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Innovatorone/InnoBOOKweb/internal/model"
)

var _ model.BookStore = (*BookRepository)(nil)

type BookRepository struct {
	db *Connection
}

func NewBookRepository(db *Connection) *BookRepository {
	return &BookRepository{
		db: db,
	}
}

// GetByIDs returns the books with the given ids. Unknown ids are skipped.
func (r *BookRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Book, error) {
	books := make([]model.Book, 0, len(ids))
	if len(ids) == 0 {
		return books, nil
	}

	const query = `
		SELECT id, title, author, category_id, image, rating, is_premium
		FROM books
		WHERE id = ANY($1)
		ORDER BY title`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get books: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.CategoryID, &b.CoverKey, &b.Rating, &b.IsPremium); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate books: %w", err)
	}

	return books, nil
}

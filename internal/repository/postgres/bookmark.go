package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Innovatorone/InnoBOOKweb/internal/model"
)

var _ model.MembershipStore = (*BookmarkRepository)(nil)

// BookmarkRepository stores bookmarked books.
type BookmarkRepository struct {
	db *Connection
}

func NewBookmarkRepository(db *Connection) *BookmarkRepository {
	return &BookmarkRepository{
		db: db,
	}
}

func (r *BookmarkRepository) ListMembers(ctx context.Context, userID uuid.UUID) ([]model.Membership, error) {
	const query = `
		SELECT user_id, book_id, created_at
		FROM bookmarks
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	defer rows.Close()

	memberships := make([]model.Membership, 0)
	for rows.Next() {
		var m model.Membership
		if err := rows.Scan(&m.UserID, &m.MemberID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bookmark: %w", err)
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookmarks: %w", err)
	}

	return memberships, nil
}

func (r *BookmarkRepository) Add(ctx context.Context, userID, bookID uuid.UUID) error {
	const query = `
		INSERT INTO bookmarks (user_id, book_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, book_id) DO NOTHING`

	if _, err := r.db.Exec(ctx, query, userID, bookID); err != nil {
		if pgCode(err) == codeForeignKeyViolation {
			return fmt.Errorf("book %s: %w", bookID, model.ErrNotFound)
		}
		return fmt.Errorf("failed to add bookmark: %w", err)
	}
	return nil
}

func (r *BookmarkRepository) Remove(ctx context.Context, userID, bookID uuid.UUID) error {
	const query = `DELETE FROM bookmarks WHERE user_id = $1 AND book_id = $2`

	if _, err := r.db.Exec(ctx, query, userID, bookID); err != nil {
		return fmt.Errorf("failed to remove bookmark: %w", err)
	}
	return nil
}

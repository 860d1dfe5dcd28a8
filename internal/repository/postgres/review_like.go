package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Innovatorone/InnoBOOKweb/internal/model"
)

var _ model.MembershipStore = (*ReviewLikeRepository)(nil)

// ReviewLikeRepository stores liked reviews and keeps reviews.likes in
// step with the review_likes rows.
type ReviewLikeRepository struct {
	db *Connection
}

func NewReviewLikeRepository(db *Connection) *ReviewLikeRepository {
	return &ReviewLikeRepository{
		db: db,
	}
}

func (r *ReviewLikeRepository) ListMembers(ctx context.Context, userID uuid.UUID) ([]model.Membership, error) {
	const query = `
		SELECT user_id, review_id, created_at
		FROM review_likes
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list review likes: %w", err)
	}
	defer rows.Close()

	memberships := make([]model.Membership, 0)
	for rows.Next() {
		var m model.Membership
		if err := rows.Scan(&m.UserID, &m.MemberID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review like: %w", err)
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate review likes: %w", err)
	}

	return memberships, nil
}

func (r *ReviewLikeRepository) Add(ctx context.Context, userID, reviewID uuid.UUID) error {
	const insert = `
		INSERT INTO review_likes (review_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (review_id, user_id) DO NOTHING`
	const bump = `UPDATE reviews SET likes = likes + 1 WHERE id = $1`

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, insert, reviewID, userID)
		if err != nil {
			if pgCode(err) == codeForeignKeyViolation {
				return fmt.Errorf("review %s: %w", reviewID, model.ErrNotFound)
			}
			return fmt.Errorf("failed to add review like: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		if _, err := tx.Exec(ctx, bump, reviewID); err != nil {
			return fmt.Errorf("failed to update review likes: %w", err)
		}
		return nil
	})
}

func (r *ReviewLikeRepository) Remove(ctx context.Context, userID, reviewID uuid.UUID) error {
	const remove = `DELETE FROM review_likes WHERE review_id = $1 AND user_id = $2`
	const drop = `UPDATE reviews SET likes = GREATEST(likes - 1, 0) WHERE id = $1`

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, remove, reviewID, userID)
		if err != nil {
			return fmt.Errorf("failed to remove review like: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		if _, err := tx.Exec(ctx, drop, reviewID); err != nil {
			return fmt.Errorf("failed to update review likes: %w", err)
		}
		return nil
	})
}

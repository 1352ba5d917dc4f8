package mariadb

import (
	"context"
	"database/sql"
	"log"

	"github.com/picstream/picstream-go/internal/port"
)

type FollowRepository struct {
	db *sql.DB
}

// compile-time check: *FollowRepository must satisfy port.FollowRepository
var _ port.FollowRepository = (*FollowRepository)(nil)

func NewFollowRepository(db *sql.DB) *FollowRepository {
	return &FollowRepository{db: db}
}

func (r *FollowRepository) Follow(ctx context.Context, followerID, followeeID string) error {
	log.Printf("recording follow edge %q -> %q...", followerID, followeeID)

	// idempotent: re-following is a no-op
	const query = `
      INSERT IGNORE INTO follows (follower_id, followee_id)
      VALUES (?, ?)
    `
	_, err := r.db.ExecContext(ctx, query, followerID, followeeID)
	return err
}

func (r *FollowRepository) Unfollow(ctx context.Context, followerID, followeeID string) error {
	log.Printf("removing follow edge %q -> %q...", followerID, followeeID)

	const query = `DELETE FROM follows WHERE follower_id = ? AND followee_id = ?`
	_, err := r.db.ExecContext(ctx, query, followerID, followeeID)
	return err
}

func (r *FollowRepository) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	const query = `SELECT 1 FROM follows WHERE follower_id = ? AND followee_id = ?`
	var one int
	err := r.db.QueryRowContext(ctx, query, followerID, followeeID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *FollowRepository) ListFollowing(ctx context.Context, followerID string) ([]string, error) {
	const query = `
      SELECT followee_id
      FROM follows
      WHERE follower_id = ?
      ORDER BY followee_id
    `
	rows, err := r.db.QueryContext(ctx, query, followerID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var followee string
		if err := rows.Scan(&followee); err != nil {
			return nil, err
		}
		out = append(out, followee)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

package database

import (
	"fmt"
)

type PostRepositoryImpl struct {
	db *DB
}

var _ PostRepository = (*PostRepositoryImpl)(nil)

func NewPostRepository(db *DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db}
}

// RecordPost appends one row to the imported-post ledger. Re-importing after
// a watermark reset hits the (subscription, guid) unique constraint; the
// conflict clause keeps that a no-op because the note file itself is the
// source of truth for duplicates.
func (r *PostRepositoryImpl) RecordPost(subscription, guid, path string, publishedMs int64) error {
	_, err := r.db.Exec(`
		INSERT INTO imported_posts (subscription, guid, path, published_ms)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (subscription, guid) DO NOTHING
	`, subscription, guid, path, publishedMs)

	if err != nil {
		return fmt.Errorf("failed to record imported post: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetPostCount(subscription string) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM imported_posts WHERE subscription = ?
	`, subscription).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("failed to get post count: %w", err)
	}

	return count, nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/pikov/internal/model"
)

// PutImage inserts a content-addressed bitmap.
// Uses ON CONFLICT(key) DO NOTHING: storing the same pixels twice is not an
// error, it reports inserted=false and leaves the existing row untouched.
func (s *Store) PutImage(ctx context.Context, key, contentType string, contents []byte) (inserted bool, err error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO images (key, content_type, contents)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO NOTHING
	`, key, contentType, contents)
	if err != nil {
		return false, fmt.Errorf("put image: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("put image: rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// GetImage retrieves a bitmap by content key.
func (s *Store) GetImage(ctx context.Context, key string) (model.ImageRecord, error) {
	var rec model.ImageRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT key, content_type, contents
		FROM images
		WHERE key = ?
	`, key).Scan(&rec.Key, &rec.ContentType, &rec.Contents)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ImageRecord{}, model.NewNotFound("image", key)
	}
	if err != nil {
		return model.ImageRecord{}, fmt.Errorf("get image: %w", err)
	}
	return rec, nil
}

// HasImage reports whether a bitmap with the given key is stored.
func (s *Store) HasImage(ctx context.Context, key string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM images WHERE key = ?
	`, key).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check image: %w", err)
	}
	return count > 0, nil
}

// imageExistsTx checks for an image inside an open transaction.
// Write paths use this to raise referential errors with useful messages
// before the foreign key backstop fires.
func imageExistsTx(ctx context.Context, tx *sql.Tx, key string) (bool, error) {
	var count int
	err := tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM images WHERE key = ?
	`, key).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check image in tx: %w", err)
	}
	return count > 0, nil
}

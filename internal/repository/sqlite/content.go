package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sakif/content-analytics/internal/model"
	"github.com/sakif/content-analytics/internal/repository"
)

var _ repository.ContentRepository = (*DB)(nil)

const contentColumns = `id, platform_id, owner_id, platform_content_id, content_type, title, url, published_date, created_at`

// CreateContent inserts content and sets its ID. Re-inserting the same
// (platform, external id) pair is allowed and yields a second row.
func (db *DB) CreateContent(ctx context.Context, content *model.Content) error {
	content.CreatedAt = time.Now().UTC()

	var published sql.NullTime
	if content.PublishedDate != nil {
		published = sql.NullTime{Time: *content.PublishedDate, Valid: true}
	}

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO contents (platform_id, owner_id, platform_content_id, content_type, title, url, published_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		content.PlatformID,
		content.OwnerID,
		content.PlatformContentID,
		content.ContentType,
		content.Title,
		content.URL,
		published,
		content.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating content: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading content id: %w", err)
	}
	content.ID = id
	return nil
}

// ListContents pages through the owner's content, newest first.
// Limit defaults to 50 and is capped at 200.
func (db *DB) ListContents(ctx context.Context, ownerID string, opts repository.ListOptions) ([]model.Content, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	offset := max(opts.Offset, 0)

	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+contentColumns+`
		 FROM contents
		 WHERE owner_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ? OFFSET ?`,
		ownerID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing contents: %w", err)
	}
	return collectContents(rows)
}

func (db *DB) ListContentsByPlatform(ctx context.Context, platformID int64) ([]model.Content, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+contentColumns+`
		 FROM contents
		 WHERE platform_id = ?
		 ORDER BY created_at DESC, id DESC`,
		platformID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing contents for platform %d: %w", platformID, err)
	}
	return collectContents(rows)
}

// collectContents scans and closes rows.
func collectContents(rows *sql.Rows) ([]model.Content, error) {
	defer rows.Close()

	contents := []model.Content{}
	for rows.Next() {
		var (
			c         model.Content
			published sql.NullTime
		)
		if err := rows.Scan(
			&c.ID, &c.PlatformID, &c.OwnerID, &c.PlatformContentID,
			&c.ContentType, &c.Title, &c.URL, &published, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning content row: %w", err)
		}
		if published.Valid {
			t := published.Time
			c.PublishedDate = &t
		}
		contents = append(contents, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating contents: %w", err)
	}
	return contents, nil
}

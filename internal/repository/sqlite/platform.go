package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sakif/content-analytics/internal/apperror"
	"github.com/sakif/content-analytics/internal/model"
	"github.com/sakif/content-analytics/internal/repository"
)

var _ repository.PlatformRepository = (*DB)(nil)

const platformColumns = `id, owner_id, platform_name, platform_username, created_at`

// CreatePlatform inserts platform and sets its ID from the autoincrement key.
// Nothing stops an owner from holding two platforms with the same name.
func (db *DB) CreatePlatform(ctx context.Context, platform *model.Platform) error {
	platform.CreatedAt = time.Now().UTC()

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO platforms (owner_id, platform_name, platform_username, created_at)
		 VALUES (?, ?, ?, ?)`,
		platform.OwnerID,
		platform.PlatformName,
		platform.PlatformUsername,
		platform.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating platform: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading platform id: %w", err)
	}
	platform.ID = id
	return nil
}

func (db *DB) GetPlatform(ctx context.Context, id int64) (*model.Platform, error) {
	var p model.Platform
	err := db.conn.QueryRowContext(ctx,
		`SELECT `+platformColumns+` FROM platforms WHERE id = ?`, id,
	).Scan(&p.ID, &p.OwnerID, &p.PlatformName, &p.PlatformUsername, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("platform", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("sqlite: getting platform %d: %w", id, err)
	}
	return &p, nil
}

func (db *DB) ListPlatforms(ctx context.Context, ownerID string) ([]model.Platform, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+platformColumns+`
		 FROM platforms
		 WHERE owner_id = ?
		 ORDER BY id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing platforms: %w", err)
	}
	defer rows.Close()

	platforms := []model.Platform{}
	for rows.Next() {
		var p model.Platform
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.PlatformName, &p.PlatformUsername, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning platform row: %w", err)
		}
		platforms = append(platforms, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating platforms: %w", err)
	}
	return platforms, nil
}

func (db *DB) DeletePlatform(ctx context.Context, id int64) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM platforms WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting platform %d: %w", id, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if n == 0 {
		return apperror.NotFound("platform", strconv.FormatInt(id, 10))
	}
	return nil
}

// PlatformStats returns one entry per platform name the owner has connected.
// Platforms with no content report a zero count.
func (db *DB) PlatformStats(ctx context.Context, ownerID string) (map[model.PlatformName]model.PlatformStats, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT p.platform_name, COUNT(c.id)
		 FROM platforms p
		 LEFT JOIN contents c ON c.platform_id = p.id
		 WHERE p.owner_id = ?
		 GROUP BY p.platform_name`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: platform stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[model.PlatformName]model.PlatformStats)
	for rows.Next() {
		var (
			name  model.PlatformName
			count int64
		)
		if err := rows.Scan(&name, &count); err != nil {
			return nil, fmt.Errorf("sqlite: scanning stats row: %w", err)
		}
		stats[name] = model.PlatformStats{ContentCount: count}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating stats: %w", err)
	}
	return stats, nil
}

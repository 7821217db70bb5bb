// Package cache keeps the most recent successful catalog page in a local
// sqlite database so the course list stays browsable when the backend is
// unreachable. It is a read cache only: favourites and sessions live in the
// JSON record store, and nothing here attempts conflict resolution.
package cache

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/unideck/unideck/internal/domain/course"
)

const schema = `
CREATE TABLE IF NOT EXISTS courses (
	id          INTEGER PRIMARY KEY,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	image       TEXT NOT NULL DEFAULT '',
	category    TEXT NOT NULL DEFAULT '',
	rating      REAL NOT NULL DEFAULT 0,
	price       REAL,
	status      TEXT NOT NULL DEFAULT '',
	duration    TEXT NOT NULL DEFAULT '',
	instructor  TEXT NOT NULL DEFAULT '',
	position    INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS cache_meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// CatalogCache stores the last successful catalog page.
type CatalogCache struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (and if needed initializes) the cache database at path.
func Open(path string, logger *slog.Logger) (*CatalogCache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize cache schema: %w", err)
	}

	return &CatalogCache{db: db, logger: logger}, nil
}

// Close closes the cache database.
func (c *CatalogCache) Close() error {
	return c.db.Close()
}

// Replace swaps the cached page for the given courses, preserving order.
// The previous contents are dropped wholesale, mirroring how the catalog
// slice replaces its course list on every successful fetch or search.
func (c *CatalogCache) Replace(ctx context.Context, courses []course.Course, total int) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cache transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM courses"); err != nil {
		return fmt.Errorf("clear cached courses: %w", err)
	}

	const insert = `
INSERT INTO courses (id, title, description, image, category, rating, price, status, duration, instructor, position)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i, crs := range courses {
		var price sql.NullFloat64
		if crs.Price != nil {
			price = sql.NullFloat64{Float64: *crs.Price, Valid: true}
		}
		if _, err := tx.ExecContext(ctx, insert,
			crs.ID, crs.Title, crs.Description, crs.Image, crs.Category,
			crs.Rating, price, string(crs.Status), crs.Duration, crs.Instructor, i,
		); err != nil {
			return fmt.Errorf("cache course %d: %w", crs.ID, err)
		}
	}

	const meta = `INSERT INTO cache_meta (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := tx.ExecContext(ctx, meta, "total", fmt.Sprintf("%d", total)); err != nil {
		return fmt.Errorf("cache total: %w", err)
	}
	if _, err := tx.ExecContext(ctx, meta, "cached_at", time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("cache timestamp: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit cache transaction: %w", err)
	}

	c.logger.Debug("catalog cache replaced", "courses", len(courses), "total", total)
	return nil
}

// Load returns the cached page in its original order. An empty cache yields
// an empty page, not an error.
func (c *CatalogCache) Load(ctx context.Context) (course.Page, error) {
	const query = `
SELECT id, title, description, image, category, rating, price, status, duration, instructor
FROM courses ORDER BY position`

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return course.Page{}, fmt.Errorf("query cached courses: %w", err)
	}
	defer rows.Close()

	page := course.Page{Courses: []course.Course{}}
	for rows.Next() {
		var crs course.Course
		var price sql.NullFloat64
		var status string
		if err := rows.Scan(
			&crs.ID, &crs.Title, &crs.Description, &crs.Image, &crs.Category,
			&crs.Rating, &price, &status, &crs.Duration, &crs.Instructor,
		); err != nil {
			return course.Page{}, fmt.Errorf("scan cached course: %w", err)
		}
		if price.Valid {
			v := price.Float64
			crs.Price = &v
		}
		crs.Status = course.Status(status)
		page.Courses = append(page.Courses, crs)
	}
	if err := rows.Err(); err != nil {
		return course.Page{}, fmt.Errorf("iterate cached courses: %w", err)
	}

	var total sql.NullString
	err = c.db.QueryRowContext(ctx,
		"SELECT value FROM cache_meta WHERE key = 'total'").Scan(&total)
	if err != nil && err != sql.ErrNoRows {
		return course.Page{}, fmt.Errorf("query cached total: %w", err)
	}
	if total.Valid {
		fmt.Sscanf(total.String, "%d", &page.Total) //nolint:errcheck
	}

	return page, nil
}

// CachedAt returns when the cache was last replaced, or the zero time for an
// empty cache.
func (c *CatalogCache) CachedAt(ctx context.Context) (time.Time, error) {
	var value string
	err := c.db.QueryRowContext(ctx,
		"SELECT value FROM cache_meta WHERE key = 'cached_at'").Scan(&value)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("query cache timestamp: %w", err)
	}

	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse cache timestamp: %w", err)
	}
	return ts, nil
}

package loader

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/lumenpedia/lumen/pkg/model"
)

// Schema is the table LoadSQLite reads. Tags are comma separated.
const Schema = `
CREATE TABLE IF NOT EXISTS entries (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	letter TEXT DEFAULT '',
	summary TEXT DEFAULT '',
	body TEXT DEFAULT '',
	thumb_path TEXT DEFAULT '',
	thumb_alt TEXT DEFAULT '',
	link TEXT DEFAULT '',
	popular INTEGER DEFAULT 0,
	tags TEXT DEFAULT '',
	position INTEGER DEFAULT 0
);
`

// LoadSQLite reads the entries table in position order.
func LoadSQLite(ctx context.Context, path string) ([]model.Entry, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT id, title, letter, summary, body, thumb_path, thumb_alt, link, popular, tags
		FROM entries
		ORDER BY position, rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", path, err)
	}
	defer rows.Close()

	var entries []model.Entry
	for rows.Next() {
		var e model.Entry
		var popular int
		var tags string
		if err := rows.Scan(&e.ID, &e.Title, &e.Letter, &e.Summary, &e.Body,
			&e.Thumb.Path, &e.Thumb.Alt, &e.Link, &popular, &tags); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", path, err)
		}
		e.Popular = popular != 0
		e.Tags = splitTags(tags)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return entries, nil
}

// WriteSQLite creates the entries table at path and inserts entries in order.
func WriteSQLite(ctx context.Context, path string, entries []model.Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating database directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO entries
		(id, title, letter, summary, body, thumb_path, thumb_alt, link, popular, tags, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, e := range entries {
		popular := 0
		if e.Popular {
			popular = 1
		}
		if _, err := stmt.ExecContext(ctx, e.ID, e.Title, e.Letter, e.Summary, e.Body,
			e.Thumb.Path, e.Thumb.Alt, e.Link, popular, strings.Join(e.Tags, ","), i); err != nil {
			return fmt.Errorf("inserting %q: %w", e.ID, err)
		}
	}
	return tx.Commit()
}

func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

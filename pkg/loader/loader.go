// Package loader reads catalog entries from JSONL, YAML and SQLite files.
package loader

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lumenpedia/lumen/pkg/model"
)

// ErrUnsupportedFormat is returned for files that are not .jsonl, .yaml, .yml,
// .db or .sqlite.
var ErrUnsupportedFormat = errors.New("unsupported catalog format")

// maxParallel bounds concurrent file reads.
const maxParallel = 4

// Document is the content of one catalog file. JSONL and SQLite files only
// carry entries.
type Document struct {
	Title   string        `yaml:"title"`
	Hero    model.Hero    `yaml:"hero"`
	Entries []model.Entry `yaml:"entries"`

	// Skipped counts malformed records that were dropped.
	Skipped int `yaml:"-"`
}

// Result is a merged catalog and what was dropped building it.
type Result struct {
	Catalog  model.Catalog
	Files    []string
	Skipped  int
	Rejected []error
}

// Expand resolves every pattern with ** glob support. A pattern without glob
// metacharacters must name an existing file.
func Expand(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		if !hasMeta(pattern) {
			if _, err := os.Stat(pattern); err != nil {
				return nil, fmt.Errorf("no catalog found at %s: %w", pattern, err)
			}
			if !seen[pattern] {
				seen[pattern] = true
				files = append(files, pattern)
			}
			continue
		}
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad catalog pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	return files, nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// Load reads every file the patterns match and merges them into one catalog.
// The first file that sets a title or hero wins; entries keep file order.
func Load(ctx context.Context, patterns ...string) (*Result, error) {
	files, err := Expand(patterns)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no catalog files match %s", strings.Join(patterns, ", "))
	}

	docs := make([]*Document, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := LoadFile(ctx, path)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Files: files}
	var title string
	var hero model.Hero
	var entries []model.Entry
	for _, doc := range docs {
		if title == "" {
			title = doc.Title
		}
		if hero == (model.Hero{}) {
			hero = doc.Hero
		}
		res.Skipped += doc.Skipped
		entries = append(entries, doc.Entries...)
	}
	Normalize(entries)
	res.Catalog, res.Rejected = model.BuildCatalog(title, hero, entries)
	for _, err := range res.Rejected {
		log.Printf("loader: rejected entry: %v", err)
	}
	return res, nil
}

// LoadFile reads one catalog file, choosing the format by extension. Relative
// thumbnail paths are resolved against the file's directory.
func LoadFile(ctx context.Context, path string) (*Document, error) {
	doc, err := loadDocument(ctx, path)
	if err != nil {
		return nil, err
	}
	resolveThumbs(doc, filepath.Dir(path))
	return doc, nil
}

func loadDocument(ctx context.Context, path string) (*Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl":
		entries, skipped, err := LoadEntriesFromFile(path)
		if err != nil {
			return nil, err
		}
		return &Document{Entries: entries, Skipped: skipped}, nil
	case ".yaml", ".yml":
		return LoadYAML(path)
	case ".db", ".sqlite":
		entries, err := LoadSQLite(ctx, path)
		if err != nil {
			return nil, err
		}
		return &Document{Entries: entries}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

func resolveThumbs(doc *Document, dir string) {
	resolve := func(t *model.Thumb) {
		if t.Path == "" || filepath.IsAbs(t.Path) || strings.Contains(t.Path, "://") {
			return
		}
		t.Path = filepath.Join(dir, t.Path)
	}
	resolve(&doc.Hero.Classic.Thumb)
	resolve(&doc.Hero.Main.Thumb)
	for i := range doc.Entries {
		resolve(&doc.Entries[i].Thumb)
	}
}

// LoadEntriesFromFile reads one entry per line from a JSONL file. Malformed
// lines are skipped and counted.
func LoadEntriesFromFile(path string) ([]model.Entry, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer file.Close()

	var entries []model.Entry
	scanner := bufio.NewScanner(file)
	// Bodies can be long markdown documents.
	const maxCapacity = 1024 * 1024 * 10 // 10MB
	buf := make([]byte, maxCapacity)
	scanner.Buffer(buf, maxCapacity)

	lineNum, skipped := 0, 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		var entry model.Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			log.Printf("loader: %s:%d: skipping malformed line: %v", path, lineNum, err)
			skipped++
			continue
		}
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, skipped, fmt.Errorf("error reading catalog file: %w", err)
	}

	return entries, skipped, nil
}

// Normalize assigns IDs to entries without one and derives missing summaries
// from the body.
func Normalize(entries []model.Entry) {
	for i := range entries {
		e := &entries[i]
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if e.Summary == "" && e.Body != "" {
			e.Summary = Summarize(e.Body, summaryLength)
		}
	}
}

// Package migrations applies embedded, forward-only SQL migrations.
//
// Files are applied in lexical order. Each file may hold several statements
// separated by semicolons, and a file is recorded as applied once all of its
// statements succeed.
package migrations

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

// Target is a database that can run migrations.
type Target interface {
	// Init creates the history table if it does not exist.
	Init(ctx context.Context) error
	Applied(ctx context.Context, name string) (bool, error)
	Exec(ctx context.Context, stmt string) error
	Record(ctx context.Context, name string) error
}

// Run applies every .sql file in dir of files that t has not seen yet. It
// returns the names it applied.
func Run(ctx context.Context, t Target, files fs.FS, dir string) ([]string, error) {
	if err := t.Init(ctx); err != nil {
		return nil, fmt.Errorf("creating migrations history table: %w", err)
	}

	entries, err := fs.ReadDir(files, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var ran []string
	for _, name := range names {
		applied, err := t.Applied(ctx, name)
		if err != nil {
			return ran, fmt.Errorf("checking if migration %s applied: %w", name, err)
		}
		if applied {
			continue
		}

		content, err := fs.ReadFile(files, dir+"/"+name)
		if err != nil {
			return ran, fmt.Errorf("failed to read migration file %s: %w", name, err)
		}

		for _, stmt := range Statements(string(content)) {
			if err := t.Exec(ctx, stmt); err != nil {
				return ran, fmt.Errorf("failed to execute migration %s: %w", name, err)
			}
		}

		if err := t.Record(ctx, name); err != nil {
			return ran, fmt.Errorf("recording migration %s: %w", name, err)
		}
		ran = append(ran, name)
	}

	return ran, nil
}

// Statements splits a migration file on semicolons, dropping blank
// statements and full-line "--" comments.
func Statements(content string) []string {
	var out []string
	for stmt := range strings.SplitSeq(content, ";") {
		var lines []string
		for line := range strings.SplitSeq(stmt, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "--") {
				continue
			}
			lines = append(lines, line)
		}
		stmt = strings.TrimSpace(strings.Join(lines, "\n"))
		if stmt == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out
}

// Package csvfile stores backup tables as comma-separated files with a
// header row.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	coreerrors "github.com/aevon-lab/mediadash/internal/core/errors"
	"github.com/aevon-lab/mediadash/internal/core/table"
)

// Store implements storage.BackupStore on a directory. Names are paths
// relative to the directory, e.g. "alice_SteamData.csv" or
// "Charts/recently_played.csv".
type Store struct {
	dir string
}

// New creates a store rooted at dir. The directory is created on first write.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the file path backing name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, filepath.FromSlash(name))
}

// WriteTable overwrites the named file with the header and every row of t.
// Null cells are written as empty fields.
func (s *Store) WriteTable(ctx context.Context, name string, t *table.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := s.Path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create backup %s: %w", name, err)
	}
	defer f.Close()

	if err := encode(f, t); err != nil {
		return fmt.Errorf("failed to write backup %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close backup %s: %w", name, err)
	}

	slog.Debug("[CSV] Wrote backup", "path", path, "rows", t.Len())
	return nil
}

// ReadTable loads the named file. Cells are typed with table.Parse, so
// integers and floats come back numeric and empty fields come back Null.
func (s *Store) ReadTable(ctx context.Context, name string) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := s.Path(name)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, coreerrors.ErrNoBackup)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open backup %s: %w", name, err)
	}
	defer f.Close()

	t, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup %s: %w", name, err)
	}
	return t, nil
}

// Exists reports whether the named backup is present.
func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.Path(name))
	return err == nil
}

func encode(w io.Writer, t *table.Table) error {
	cw := csv.NewWriter(w)
	columns := t.Columns()
	if err := cw.Write(columns); err != nil {
		return err
	}

	record := make([]string, len(columns))
	for _, row := range t.Rows() {
		for i, c := range columns {
			record[i] = row.Get(c).String()
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func decode(r io.Reader) (*table.Table, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return table.New(), nil
	}
	if err != nil {
		return nil, err
	}

	t := table.New(header...)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(table.Row, len(header))
		for i, c := range header {
			row[c] = table.Parse(record[i])
		}
		t.Append(row)
	}
	return t, nil
}

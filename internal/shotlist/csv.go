package shotlist

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"reel/internal/fileutil"
	"reel/internal/services"
)

// Write renders rows as CSV with the Header row first and CRLF line endings.
func Write(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row.record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile replaces path with the rendered shot list atomically.
func WriteFile(path string, rows []Row) error {
	if err := fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return Write(w, rows)
	}); err != nil {
		return services.Wrap(services.ErrIO, "shotlist", "write", path, err)
	}
	return nil
}

// Read parses a shot list. Columns are matched by header name, so a
// reordered file still reads; every Header column must be present.
func Read(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, services.Wrap(services.ErrValidation, "shotlist", "read", "missing header row", nil)
		}
		return nil, services.Wrap(services.ErrValidation, "shotlist", "read", "header", err)
	}
	index, err := headerIndex(header)
	if err != nil {
		return nil, err
	}

	var rows []Row
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, services.Wrap(services.ErrValidation, "shotlist", "read", fmt.Sprintf("line %d", line), err)
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		row, err := rowFromRecord(rec, index)
		if err != nil {
			return nil, services.Wrap(services.ErrValidation, "shotlist", "read", fmt.Sprintf("line %d", line), err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadFile reads the shot list at path. A missing file is ErrNotFound.
func ReadFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "shotlist", "read", "no shot list at "+path, err)
		}
		return nil, services.Wrap(services.ErrIO, "shotlist", "read", path, err)
	}
	defer f.Close()
	return Read(f)
}

func headerIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, col := range header {
		col = strings.TrimSpace(col)
		if i == 0 {
			col = strings.TrimPrefix(col, "\ufeff")
		}
		if _, dup := index[col]; dup {
			return nil, services.Wrap(services.ErrValidation, "shotlist", "read", fmt.Sprintf("duplicate column %q", col), nil)
		}
		index[col] = i
	}
	var missing []string
	for _, col := range Header {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, services.Wrap(services.ErrValidation, "shotlist", "read",
			"missing columns: "+strings.Join(missing, ", "), nil)
	}
	return index, nil
}

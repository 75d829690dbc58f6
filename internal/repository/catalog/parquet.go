package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"github.com/kailas-cloud/reelmatch/internal/domain"
)

const parquetBatch = 1000

// parquetHandle keeps the file open while its row groups are read.
type parquetHandle struct {
	pf   *parquet.File
	file *os.File
}

// Close releases the underlying file.
func (h *parquetHandle) Close() {
	_ = h.file.Close()
}

func openParquet(path string) (*parquetHandle, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("open parquet: %w", err)
	}
	return &parquetHandle{pf: pf, file: f}, nil
}

// readParquetTable feeds every row of pf to fn with the same skip rules as
// the CSV reader. Columns are matched by their top-level name; repeated
// values (e.g. a list of genres) are joined with ", ". Nulls read as "".
// Row numbers count from 1 across row groups.
func readParquetTable(ctx context.Context, pf *parquet.File, table string, fn func(row) error) (int, error) {
	leaves := pf.Schema().Columns()
	names := make([]string, len(leaves))
	for i, path := range leaves {
		if len(path) > 0 {
			names[i] = path[0]
		}
	}
	t := parquetTable{
		name:   table,
		header: headerIndex(names),
		width:  len(leaves),
		buf:    make([]parquet.Row, parquetBatch),
	}

	for _, rg := range pf.RowGroups() {
		if err := t.readRowGroup(ctx, rg, fn); err != nil {
			return t.skipped, err
		}
	}
	return t.skipped, nil
}

type parquetTable struct {
	name    string
	header  map[string]int
	width   int
	buf     []parquet.Row
	line    int
	skipped int
}

func (t *parquetTable) readRowGroup(ctx context.Context, rg parquet.RowGroup, fn func(row) error) error {
	rows := parquet.NewRowGroupReader(rg)
	defer func() { _ = rows.Close() }()

	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("read %s: %w", t.name, err)
		}

		cnt, readErr := rows.ReadRows(t.buf)
		for i := range cnt {
			t.line++
			err := fn(row{line: t.line, header: t.header, fields: rowFields(t.buf[i], t.width)})
			if errors.Is(err, domain.ErrMalformedRow) {
				t.skipped++
				continue
			}
			if err != nil {
				return err
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			return fmt.Errorf("read %s rows: %w", t.name, readErr)
		}
	}
}

// rowFields flattens a parquet row into one string per leaf column.
func rowFields(r parquet.Row, width int) []string {
	fields := make([]string, width)
	for _, v := range r {
		col := v.Column()
		if col < 0 || col >= width || v.IsNull() {
			continue
		}
		if fields[col] == "" {
			fields[col] = v.String()
		} else {
			fields[col] += ", " + v.String()
		}
	}
	return fields
}

package datagen

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/okian/harmony/internal/domain/dataset"
)

// writeTable writes t as CSV to dir/name, creating dir if needed.
func writeTable(dir, name string, t dataset.Table) (err error) {
	if err := os.MkdirAll(dir, directoryPermission); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteTable, dir, err)
	}

	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteTable, path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %s: %w", ErrWriteTable, path, cerr)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteTable, path, err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteTable, path, err)
	}
	return nil
}

package backup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/heartmarshall/prompt-vault/internal/domain"
)

// FileSink stores backups as files in a local directory.
type FileSink struct {
	Dir string
}

func (f FileSink) Put(_ context.Context, name string, data []byte) error {
	if err := os.MkdirAll(f.Dir, 0o750); err != nil {
		return fmt.Errorf("create backup dir: %w", err)
	}
	return os.WriteFile(f.path(name), data, 0o640)
}

func (f FileSink) Get(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(f.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("backup %s: %w", name, domain.ErrNotFound)
	}
	return data, err
}

// path keeps name inside Dir.
func (f FileSink) path(name string) string {
	return filepath.Join(f.Dir, filepath.Base(name))
}

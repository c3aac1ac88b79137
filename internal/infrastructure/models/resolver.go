package models

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"imgfilter/internal/domain/port"
)

// Extension расширение файлов моделей
const Extension = ".yml"

// DirResolver ищет модели в каталоге как <dir>/<name>.yml
type DirResolver struct {
	Dir string
}

// NewDirResolver создаёт резолвер для каталога моделей
func NewDirResolver(dir string) *DirResolver {
	return &DirResolver{Dir: dir}
}

// Path возвращает путь, по которому ожидается модель
func (r *DirResolver) Path(name string) string {
	return filepath.Join(r.Dir, name+Extension)
}

// Resolve возвращает путь к существующему файлу модели
func (r *DirResolver) Resolve(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty model name: %w", port.ErrModelNotFound)
	}

	path := r.Path(name)
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("model %q not found at %s: %w", name, path, port.ErrModelNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("stat model %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("model %q at %s is a directory: %w", name, path, port.ErrModelNotFound)
	}
	return path, nil
}

var _ port.ModelResolver = (*DirResolver)(nil)

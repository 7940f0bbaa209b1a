// Package media хранит загруженные файлы инцидентов на локальном диске.
package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/shenikar/rescue_chain/internal/service"
)

const maxFileSize = 10 << 20

// LocalStore сохраняет файлы в каталог и отдает URL относительно baseURL
type LocalStore struct {
	dir     string
	baseURL string
}

var _ service.MediaStore = (*LocalStore)(nil)

func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media dir: %w", err)
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Dir возвращает каталог для раздачи статики
func (s *LocalStore) Dir() string {
	return s.dir
}

// Save пишет файл под уникальным именем. Имя от клиента очищается от пути.
func (s *LocalStore) Save(ctx context.Context, fileName, _ string, body io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	base := sanitize(fileName)
	name := uuid.NewString() + "-" + base

	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %w", err)
	}

	n, err := io.Copy(f, io.LimitReader(body, maxFileSize+1))
	closeErr := f.Close()
	if err == nil && n > maxFileSize {
		err = fmt.Errorf("%w: file %s exceeds %d bytes", service.ErrValidation, base, maxFileSize)
	}
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(filepath.Join(s.dir, name))
		return "", fmt.Errorf("failed to write media file: %w", err)
	}

	return path.Join(s.baseURL, name), nil
}

func sanitize(fileName string) string {
	base := filepath.Base(strings.ReplaceAll(fileName, "\\", "/"))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, base)
	if base == "" || base == "." || base == ".." {
		return "file"
	}
	return base
}

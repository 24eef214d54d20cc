package filestorage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// URLPrefix - под этим путем HTTP-слой раздает сохраненные файлы.
const URLPrefix = "/uploads/"

type FileStorageInterface interface {
	// Save возвращает публичный URL и число записанных байт.
	Save(file io.Reader, originalFileName string, prefix string) (url string, size int64, err error)
	Delete(url string) error
}

type LocalFileStorage struct {
	basePath string
}

func NewLocalFileStorage(basePath string) (FileStorageInterface, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию: %w", err)
	}
	return &LocalFileStorage{basePath: basePath}, nil
}

func (s *LocalFileStorage) Save(file io.Reader, originalFileName string, prefix string) (string, int64, error) {
	ext := strings.ToLower(filepath.Ext(originalFileName))
	uniqueFileName := uuid.New().String() + ext

	datePath := time.Now().Format("2006/01/02")
	relDir := filepath.Join(filepath.Base(filepath.Clean("/"+prefix)), datePath)
	fullDirPath := filepath.Join(s.basePath, relDir)

	if err := os.MkdirAll(fullDirPath, 0o755); err != nil {
		return "", 0, err
	}

	dst, err := os.Create(filepath.Join(fullDirPath, uniqueFileName))
	if err != nil {
		return "", 0, err
	}
	defer dst.Close()

	size, err := io.Copy(dst, file)
	if err != nil {
		return "", 0, err
	}

	return URLPrefix + filepath.ToSlash(filepath.Join(relDir, uniqueFileName)), size, nil
}

// Delete: отсутствующий файл не считается ошибкой.
func (s *LocalFileStorage) Delete(url string) error {
	relativePath := filepath.Clean("/" + strings.TrimPrefix(url, URLPrefix))
	fullPath := filepath.Join(s.basePath, relativePath)

	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

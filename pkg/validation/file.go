package validation

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"slices"
	"strings"
)

const XLSXMimeType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var DocumentMimeTypes = []string{
	XLSXMimeType,
	"application/pdf",
	"image/jpeg",
	"image/png",
	"image/webp",
	"application/zip",
	"text/plain; charset=utf-8",
	"text/csv",
}

// ValidateFile проверяет размер и тип файла по первым 512 байтам.
// Возвращает определенный MIME-тип.
func ValidateFile(fileHeader *multipart.FileHeader, file io.ReadSeeker, maxSizeMB int64, allowed []string) (string, error) {
	if maxSizeMB > 0 {
		maxSizeBytes := maxSizeMB * 1024 * 1024
		if fileHeader.Size > maxSizeBytes {
			return "", fmt.Errorf("размер файла (%d KB) превышает лимит в %d MB", fileHeader.Size/1024, maxSizeMB)
		}
	}

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("не удалось прочитать файл для определения типа")
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("не удалось сбросить указатель файла")
	}

	mimeType := http.DetectContentType(buffer[:n])
	// docx/xlsx распознаются как zip
	if mimeType == "application/zip" && strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
		mimeType = XLSXMimeType
	}

	if !slices.Contains(allowed, mimeType) {
		return "", fmt.Errorf("недопустимый тип файла: %s", mimeType)
	}
	return mimeType, nil
}

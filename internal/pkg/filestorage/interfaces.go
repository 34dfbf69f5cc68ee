package filestorage

import (
	"mime/multipart"
)

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveFile saves an uploaded file and returns the accessible path
	SaveFile(fileHeader *multipart.FileHeader) (string, error)

	// SaveFileWithPath saves an uploaded file under a subdirectory
	SaveFileWithPath(fileHeader *multipart.FileHeader, path string) (string, error)

	// SaveBytes writes raw content (e.g. a generated PDF) under a subdirectory
	// and returns the accessible path
	SaveBytes(content []byte, subPath, filename string) (string, error)

	// DeleteFile removes a file from storage
	DeleteFile(filePath string) error

	// GetFullPath returns the full filesystem path for a given file URL
	GetFullPath(fileURL string) string
}

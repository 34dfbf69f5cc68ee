package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/tailorwise/tailorwise/internal/pkg/logger"
)

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // The root directory where files will be stored
	baseURL  string // The base URL to access the stored files (optional)
}

// NewLocalStorage creates a new LocalStorage instance.
// basePath is the required directory path on the server.
// baseURL is optional; if provided, it will be prepended to returned file paths.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  baseURL,
	}, nil
}

// SaveFileWithPath saves an uploaded file to a subdirectory of the storage root
func (ls *LocalStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if fileHeader == nil {
		return "", nil // No file uploaded
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	fullDirPath := ls.basePath
	if subPath != "" {
		fullDirPath = filepath.Join(ls.basePath, subPath)
		if err := os.MkdirAll(fullDirPath, os.ModePerm); err != nil {
			logger.Error().Err(err).Str("path", fullDirPath).Msg("Failed to create subdirectory")
			return "", fmt.Errorf("failed to create subdirectory: %w", err)
		}
	}

	// Unique filename preserving the original extension
	ext := filepath.Ext(fileHeader.Filename)
	uniqueFilename := uuid.New().String() + strings.ToLower(ext)
	destPath := filepath.Join(fullDirPath, uniqueFilename)

	dest, err := os.Create(destPath)
	if err != nil {
		logger.Error().Err(err).Str("path", destPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dest.Close()

	if _, err := io.Copy(dest, file); err != nil {
		logger.Error().Err(err).Str("path", destPath).Msg("Failed to write file content")
		return "", fmt.Errorf("failed to write file content: %w", err)
	}

	accessiblePath := ls.accessiblePath(subPath, uniqueFilename)

	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", uniqueFilename).Str("accessible_path", accessiblePath).Msg("File saved successfully")
	return accessiblePath, nil
}

// SaveFile saves an uploaded file using the default path
func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader) (string, error) {
	return ls.SaveFileWithPath(fileHeader, "")
}

// SaveBytes writes raw content under a subdirectory. Unlike uploads, the
// caller controls the filename so generated documents keep stable names.
func (ls *LocalStorage) SaveBytes(content []byte, subPath, filename string) (string, error) {
	fullDirPath := ls.basePath
	if subPath != "" {
		fullDirPath = filepath.Join(ls.basePath, subPath)
		if err := os.MkdirAll(fullDirPath, os.ModePerm); err != nil {
			logger.Error().Err(err).Str("path", fullDirPath).Msg("Failed to create subdirectory")
			return "", fmt.Errorf("failed to create subdirectory: %w", err)
		}
	}

	destPath := filepath.Join(fullDirPath, filename)
	if err := os.WriteFile(destPath, content, 0o644); err != nil {
		logger.Error().Err(err).Str("path", destPath).Msg("Failed to write file content")
		return "", fmt.Errorf("failed to write file content: %w", err)
	}

	accessiblePath := ls.accessiblePath(subPath, filename)

	logger.Info().Str("saved_as", filename).Str("accessible_path", accessiblePath).Msg("File saved successfully")
	return accessiblePath, nil
}

// DeleteFile removes a file from the storage filesystem.
// It accepts the accessible path as stored in the database (e.g. uploads/photos/abc.jpg).
// Returns nil if deletion is successful or if the file doesn't exist.
func (ls *LocalStorage) DeleteFile(filePath string) error {
	if filePath == "" {
		return nil // Nothing to delete
	}

	physicalPath := ls.GetFullPath(filePath)
	if physicalPath == "" {
		return fmt.Errorf("invalid file path: %s", filePath)
	}

	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil // Idempotent delete
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	return nil
}

// GetFullPath returns the full filesystem path for a given accessible path or URL.
func (ls *LocalStorage) GetFullPath(fileURL string) string {
	trimmed := strings.TrimPrefix(fileURL, ls.baseURL)
	trimmed = strings.TrimPrefix(trimmed, "/")
	trimmed = strings.TrimPrefix(trimmed, "uploads/")

	cleaned := filepath.Clean(trimmed)
	if cleaned == "" || cleaned == "." || strings.HasPrefix(cleaned, "..") {
		return ""
	}

	return filepath.Join(ls.basePath, cleaned)
}

func (ls *LocalStorage) accessiblePath(subPath, filename string) string {
	rel := filename
	if subPath != "" {
		rel = filepath.ToSlash(filepath.Join(subPath, filename))
	}
	if ls.baseURL != "" {
		return strings.TrimSuffix(ls.baseURL, "/") + "/uploads/" + rel
	}
	return "uploads/" + rel
}

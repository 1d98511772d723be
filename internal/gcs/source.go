package gcs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// ReadSource loads a return file from a gs:// URI through svc, or from the
// local filesystem otherwise.
func ReadSource(ctx context.Context, svc StorageService, source string) ([]byte, error) {
	if IsGCSURI(source) {
		if svc == nil {
			return nil, fmt.Errorf("ReadSource: no storage service for %s", source)
		}
		data, err := svc.FetchFromGCS(ctx, source)
		if err != nil {
			return nil, fmt.Errorf("ReadSource: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("ReadSource: reading %s: %w", source, err)
	}
	return data, nil
}

// SourceFilename returns the base name of a gs:// URI or local path.
func SourceFilename(source string) string {
	if IsGCSURI(source) {
		return ExtractFilenameFromGCSURI(source)
	}
	return filepath.Base(source)
}

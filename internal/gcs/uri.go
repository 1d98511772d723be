package gcs

import (
	"fmt"
	"path"
	"strings"
)

// Scheme prefixes every Cloud Storage URI.
const Scheme = "gs://"

// IsGCSURI reports whether source names a Cloud Storage object.
func IsGCSURI(source string) bool {
	return strings.HasPrefix(source, Scheme)
}

// ParseGCSURI splits "gs://bucket/path/to/file" into bucket and object.
func ParseGCSURI(uri string) (bucket, object string, err error) {
	if !IsGCSURI(uri) {
		return "", "", fmt.Errorf("ParseGCSURI: invalid GCS URI: %s", uri)
	}

	parts := strings.SplitN(strings.TrimPrefix(uri, Scheme), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("ParseGCSURI: invalid GCS URI (no object path): %s", uri)
	}
	return parts[0], parts[1], nil
}

// BuildURI joins bucket and object into a gs:// URI.
func BuildURI(bucket, object string) string {
	return Scheme + bucket + "/" + strings.TrimPrefix(object, "/")
}

// ExtractFilenameFromGCSURI extracts the filename from a GCS URI.
// e.g., "gs://bucket/inbox/CB010124.RET" → "CB010124.RET"
func ExtractFilenameFromGCSURI(uri string) string {
	trimmed := strings.TrimPrefix(uri, Scheme)

	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) < 2 {
		return trimmed
	}
	return path.Base(parts[1])
}

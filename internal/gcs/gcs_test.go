package gcs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type MockStorageService struct {
	FetchFromGCSFunc func(ctx context.Context, gcsURI string) ([]byte, error)
}

func (m *MockStorageService) UploadFile(ctx context.Context, bucketName, objectName, filePath string) error {
	return nil
}

func (m *MockStorageService) FetchFromGCS(ctx context.Context, gcsURI string) ([]byte, error) {
	return m.FetchFromGCSFunc(ctx, gcsURI)
}

func (m *MockStorageService) ListObjects(ctx context.Context, bucketName, prefix string) ([]string, error) {
	return nil, nil
}

func (m *MockStorageService) ExtractFilenameFromGCSURI(uri string) string {
	return ExtractFilenameFromGCSURI(uri)
}

func TestParseGCSURI(t *testing.T) {
	tests := []struct {
		uri        string
		wantBucket string
		wantObject string
		wantErr    bool
	}{
		{"gs://returns/inbox/CB010124.RET", "returns", "inbox/CB010124.RET", false},
		{"gs://returns/CB010124.RET", "returns", "CB010124.RET", false},
		{"gs://returns", "", "", true},
		{"gs://returns/", "", "", true},
		{"s3://returns/file", "", "", true},
		{"/tmp/CB010124.RET", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			bucket, object, err := ParseGCSURI(tt.uri)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseGCSURI() error = %v, wantErr %v", err, tt.wantErr)
			}
			if bucket != tt.wantBucket || object != tt.wantObject {
				t.Errorf("ParseGCSURI() = (%q, %q), want (%q, %q)", bucket, object, tt.wantBucket, tt.wantObject)
			}
		})
	}
}

func TestExtractFilenameFromGCSURI(t *testing.T) {
	tests := map[string]string{
		"gs://returns/inbox/2024/CB010124.RET": "CB010124.RET",
		"gs://returns/CB010124.RET":            "CB010124.RET",
		"gs://returns":                         "returns",
	}
	for uri, want := range tests {
		if got := ExtractFilenameFromGCSURI(uri); got != want {
			t.Errorf("ExtractFilenameFromGCSURI(%q) = %q, want %q", uri, got, want)
		}
	}
}

func TestBuildURI(t *testing.T) {
	if got := BuildURI("returns", "/inbox/a.ret"); got != "gs://returns/inbox/a.ret" {
		t.Errorf("BuildURI() = %q", got)
	}
}

func TestReadSource(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "CB010124.RET")
	if err := os.WriteFile(local, []byte("local"), 0o644); err != nil {
		t.Fatal(err)
	}

	mock := &MockStorageService{
		FetchFromGCSFunc: func(ctx context.Context, gcsURI string) ([]byte, error) {
			if gcsURI == "gs://returns/missing.ret" {
				return nil, errors.New("object not found")
			}
			return []byte("remote"), nil
		},
	}

	ctx := context.Background()
	got, err := ReadSource(ctx, mock, local)
	if err != nil || string(got) != "local" {
		t.Errorf("ReadSource(local) = %q, %v", got, err)
	}
	got, err = ReadSource(ctx, mock, "gs://returns/CB010124.RET")
	if err != nil || string(got) != "remote" {
		t.Errorf("ReadSource(gs) = %q, %v", got, err)
	}
	if _, err := ReadSource(ctx, mock, "gs://returns/missing.ret"); err == nil {
		t.Error("expected error for missing object")
	}
	if _, err := ReadSource(ctx, nil, "gs://returns/CB010124.RET"); err == nil {
		t.Error("expected error without a storage service")
	}
	if _, err := ReadSource(ctx, mock, filepath.Join(dir, "nope.ret")); err == nil {
		t.Error("expected error for missing local file")
	}

	if got := SourceFilename(local); got != "CB010124.RET" {
		t.Errorf("SourceFilename(local) = %q", got)
	}
}

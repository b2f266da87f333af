package pdf

import (
	"os"
	"path/filepath"
	"testing"
)

func setupSearchDir(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()

	files := map[string][]byte{
		"roster_adultos_2025-1.pdf": make([]byte, 512),
		"roster_kids_2025-1.pdf":    make([]byte, 512),
		"notes.txt":                 []byte("not a pdf"),
		"empty.pdf":                 {},
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(tempDir, name), content, 0o644); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}

	// Hidden directories are skipped entirely
	hidden := filepath.Join(tempDir, ".cache")
	if err := os.MkdirAll(hidden, 0o755); err != nil {
		t.Fatalf("failed to create hidden dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(hidden, "stale.pdf"), make([]byte, 512), 0o644); err != nil {
		t.Fatalf("failed to create hidden file: %v", err)
	}

	return tempDir
}

func TestSearch_SearchDirectory(t *testing.T) {
	search := NewSearch(1024 * 1024)
	tempDir := setupSearchDir(t)

	tests := []struct {
		name          string
		req           SearchDirectoryRequest
		expectedCount int
		expectError   bool
	}{
		{
			name:        "empty directory argument",
			req:         SearchDirectoryRequest{Directory: ""},
			expectError: true,
		},
		{
			name:        "non-existent directory",
			req:         SearchDirectoryRequest{Directory: "/non/existent"},
			expectError: true,
		},
		{
			name:          "all roster PDFs, empty and non-PDF files excluded",
			req:           SearchDirectoryRequest{Directory: tempDir},
			expectedCount: 2,
		},
		{
			name:          "fuzzy query matches one file",
			req:           SearchDirectoryRequest{Directory: tempDir, Query: "adultos"},
			expectedCount: 1,
		},
		{
			name:          "word-based query",
			req:           SearchDirectoryRequest{Directory: tempDir, Query: "kids 2025"},
			expectedCount: 1,
		},
		{
			name:          "query with no matches",
			req:           SearchDirectoryRequest{Directory: tempDir, Query: "jovenes"},
			expectedCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := search.SearchDirectory(tt.req)

			if tt.expectError {
				if err == nil {
					t.Errorf("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if result.TotalCount != tt.expectedCount {
				t.Errorf("expected %d files but got %d", tt.expectedCount, result.TotalCount)
			}
		})
	}
}

func TestSearch_FindPDFsInDirectory(t *testing.T) {
	search := NewSearch(1024 * 1024)
	tempDir := setupSearchDir(t)

	files, err := search.FindPDFsInDirectory(tempDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(files) != 2 {
		t.Errorf("expected 2 files but got %d", len(files))
	}

	for _, file := range files {
		if file.Size == 0 {
			t.Errorf("empty files should have been excluded: %s", file.Name)
		}
	}
}

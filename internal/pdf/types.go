package pdf

// TextFragment is a single positioned text item from a PDF content stream.
// X and Y are the fragment origin in PDF coordinates (origin bottom-left),
// Width is the rendered advance of the fragment.
type TextFragment struct {
	Text  string  `json:"text"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Width float64 `json:"width"`
}

// FileInfo represents information about a roster PDF file
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}

// Request Types

// ExtractLinesRequest represents a request to extract logical text lines from a PDF file
type ExtractLinesRequest struct {
	Path string `json:"path"`
}

// ValidateFileRequest represents a request to validate a PDF file
type ValidateFileRequest struct {
	Path string `json:"path"`
}

// SearchDirectoryRequest represents a request to search for PDF files in a directory
type SearchDirectoryRequest struct {
	Directory string `json:"directory"`
	Query     string `json:"query"`
}

// Response Types

// ExtractLinesResult represents the result of a line extraction operation
type ExtractLinesResult struct {
	Lines       []string `json:"lines"`
	Path        string   `json:"path"`
	Pages       int      `json:"pages"`
	Size        int64    `json:"size"`
	ContentType string   `json:"content_type"` // "text", "scanned_images", "no_content"
	HasImages   bool     `json:"has_images"`
	ImageCount  int      `json:"image_count"`
}

// ValidateFileResult represents the result of a PDF validation operation
type ValidateFileResult struct {
	Valid   bool   `json:"valid"`
	Path    string `json:"path"`
	Message string `json:"message,omitempty"`
}

// SearchDirectoryResult represents the result of a PDF search operation
type SearchDirectoryResult struct {
	Files       []FileInfo `json:"files"`
	TotalCount  int        `json:"total_count"`
	Directory   string     `json:"directory"`
	SearchQuery string     `json:"search_query,omitempty"`
}

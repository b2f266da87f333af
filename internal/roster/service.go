package roster

import (
	"fmt"
	"path/filepath"

	"github.com/cevaztools/continuidad/internal/pdf"
)

// Service runs the document-to-comparison pipeline: validate, extract
// lines, parse students, diff periods.
type Service struct {
	reader    *pdf.Reader
	validator *pdf.Validator
	search    *pdf.Search
	parser    *Parser
	differ    *Differ
}

// NewService creates a roster service with the given file size limit and
// terminal level ("" for the default).
func NewService(maxFileSize int64, terminalLevel string) *Service {
	return &Service{
		reader:    pdf.NewReader(maxFileSize),
		validator: pdf.NewValidator(maxFileSize),
		search:    pdf.NewSearch(maxFileSize),
		parser:    NewParser(),
		differ:    NewDiffer(terminalLevel),
	}
}

// ParseFileRequest represents a request to parse one roster PDF
type ParseFileRequest struct {
	Path string `json:"path"`
}

// ParseFileResult represents one parsed roster document
type ParseFileResult struct {
	Path        string    `json:"path"`
	Pages       int       `json:"pages"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	Students    []Student `json:"students"`
}

// CompareFilesRequest represents a request to compare two roster periods
type CompareFilesRequest struct {
	OldPath string `json:"old_path"`
	NewPath string `json:"new_path"`
}

// CompareFilesResult represents the comparison of two roster periods
type CompareFilesResult struct {
	OldPath string            `json:"old_path"`
	NewPath string            `json:"new_path"`
	Result  *ComparisonResult `json:"result"`
}

// ParseFile extracts and parses one roster document. A document that
// decodes but contains no recognizable rows yields an empty student list,
// not an error.
func (s *Service) ParseFile(req ParseFileRequest) (*ParseFileResult, error) {
	extracted, err := s.reader.ExtractLines(pdf.ExtractLinesRequest{Path: req.Path})
	if err != nil {
		return nil, fmt.Errorf("failed to extract roster text: %w", err)
	}

	students := s.parser.Parse(extracted.Lines, filepath.Base(req.Path))

	return &ParseFileResult{
		Path:        extracted.Path,
		Pages:       extracted.Pages,
		Size:        extracted.Size,
		ContentType: extracted.ContentType,
		Students:    students,
	}, nil
}

// CompareFiles parses both periods and diffs them. The two documents have
// no ordering dependency, so they are parsed concurrently and joined before
// the diff.
func (s *Service) CompareFiles(req CompareFilesRequest) (*CompareFilesResult, error) {
	type parseOutcome struct {
		result *ParseFileResult
		err    error
	}

	oldCh := make(chan parseOutcome, 1)
	go func() {
		result, err := s.ParseFile(ParseFileRequest{Path: req.OldPath})
		oldCh <- parseOutcome{result, err}
	}()

	newResult, newErr := s.ParseFile(ParseFileRequest{Path: req.NewPath})
	oldOutcome := <-oldCh

	if oldOutcome.err != nil {
		return nil, fmt.Errorf("previous period: %w", oldOutcome.err)
	}
	if newErr != nil {
		return nil, fmt.Errorf("current period: %w", newErr)
	}

	oldResult := oldOutcome.result
	if len(oldResult.Students) == 0 || len(newResult.Students) == 0 {
		return nil, fmt.Errorf(
			"no students extracted (old=%d, new=%d): the PDF may be scanned or in an unsupported layout",
			len(oldResult.Students), len(newResult.Students))
	}

	return &CompareFilesResult{
		OldPath: req.OldPath,
		NewPath: req.NewPath,
		Result:  s.differ.Compare(oldResult.Students, newResult.Students),
	}, nil
}

// ValidateFile checks that a file is a readable roster PDF
func (s *Service) ValidateFile(req pdf.ValidateFileRequest) (*pdf.ValidateFileResult, error) {
	return s.validator.ValidateFile(req)
}

// SearchDirectory finds roster PDFs in a directory
func (s *Service) SearchDirectory(req pdf.SearchDirectoryRequest) (*pdf.SearchDirectoryResult, error) {
	return s.search.SearchDirectory(req)
}

// IsValidPDF performs a quick validation check on a file
func (s *Service) IsValidPDF(path string) bool {
	return s.validator.IsValidPDF(path)
}

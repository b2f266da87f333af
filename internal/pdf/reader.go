package pdf

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Reader extracts logical text lines from roster PDF files
type Reader struct {
	maxFileSize int64
	lines       *LineBuilder
}

// NewReader creates a new PDF reader with the specified constraints
func NewReader(maxFileSize int64) *Reader {
	return &Reader{
		maxFileSize: maxFileSize,
		lines:       NewLineBuilder(),
	}
}

// ExtractLines reads a PDF file and returns its logical text lines in
// reading order, with an empty line separating pages. A document with no
// extractable text yields an empty slice, not an error; the caller decides
// how to treat it (see ContentType).
func (r *Reader) ExtractLines(req ExtractLinesRequest) (*ExtractLinesResult, error) {
	if req.Path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(req.Path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", req.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}

	if err := r.validatePDFFile(req.Path, fileInfo); err != nil {
		return nil, err
	}

	f, pdfReader, err := pdf.Open(req.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var lines []string
	for pageNum := 1; pageNum <= pdfReader.NumPage(); pageNum++ {
		fragments := r.pageFragments(pdfReader, pageNum)
		lines = append(lines, r.lines.BuildPageLines(fragments)...)
		// Page separator; parsers that don't care skip empty lines.
		lines = append(lines, "")
	}

	hasText := false
	for _, line := range lines {
		if line != "" {
			hasText = true
			break
		}
	}
	if !hasText {
		lines = nil
	}

	hasImages, imageCount := r.detectImages(pdfReader)

	result := &ExtractLinesResult{
		Lines:       lines,
		Path:        req.Path,
		Pages:       pdfReader.NumPage(),
		Size:        fileInfo.Size(),
		ContentType: r.analyzeContentType(hasText, hasImages),
		HasImages:   hasImages,
		ImageCount:  imageCount,
	}

	return result, nil
}

// pageFragments collects the positioned text fragments of a single page
func (r *Reader) pageFragments(pdfReader *pdf.Reader, pageNum int) []TextFragment {
	defer func() {
		// Some malformed pages panic inside the content-stream decoder;
		// treat them as pages without text.
		_ = recover()
	}()

	page := pdfReader.Page(pageNum)
	if page.V.IsNull() {
		return nil
	}

	content := page.Content()
	fragments := make([]TextFragment, 0, len(content.Text))
	for _, text := range content.Text {
		fragments = append(fragments, TextFragment{
			Text:  text.S,
			X:     text.X,
			Y:     text.Y,
			Width: text.W,
		})
	}

	return fragments
}

// validatePDFFile performs basic validation on a PDF file
func (r *Reader) validatePDFFile(filePath string, fileInfo os.FileInfo) error {
	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	if !strings.HasSuffix(strings.ToLower(filePath), ".pdf") {
		return fmt.Errorf("file is not a PDF: %s", filePath)
	}

	if fileInfo.Size() > r.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), r.maxFileSize)
	}

	return nil
}

// analyzeContentType classifies what the document holds. A roster PDF with
// images but no text layer is almost always a scanned copy.
func (r *Reader) analyzeContentType(hasText, hasImages bool) string {
	switch {
	case hasText:
		return "text"
	case hasImages:
		return "scanned_images"
	default:
		return "no_content"
	}
}

// detectImages scans the PDF for image XObjects
func (r *Reader) detectImages(pdfReader *pdf.Reader) (bool, int) {
	imageCount := 0

	for pageNum := 1; pageNum <= pdfReader.NumPage(); pageNum++ {
		imageCount += r.countImagesOnPage(pdfReader, pageNum)
	}

	return imageCount > 0, imageCount
}

// countImagesOnPage counts image XObjects on a specific page
func (r *Reader) countImagesOnPage(pdfReader *pdf.Reader, pageNum int) int {
	defer func() {
		// Recover from any panics during image detection
		_ = recover()
	}()

	page := pdfReader.Page(pageNum)
	if page.V.IsNull() {
		return 0
	}

	resources := page.V.Key("Resources")
	if resources.IsNull() {
		return 0
	}

	xObjects := resources.Key("XObject")
	if xObjects.IsNull() || xObjects.Kind() != pdf.Dict {
		return 0
	}

	imageCount := 0
	for _, key := range xObjects.Keys() {
		obj := xObjects.Key(key)
		if obj.IsNull() {
			continue
		}

		subtype := obj.Key("Subtype")
		if subtype.IsNull() || subtype.Name() != "Image" {
			continue
		}

		imageCount++
	}

	return imageCount
}

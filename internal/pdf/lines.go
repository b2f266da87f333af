package pdf

import (
	"math"
	"sort"
	"strings"
)

const (
	// Fragments whose horizontal gap to the previous fragment exceeds this
	// many layout units are treated as separate words. Smaller gaps are
	// kerning inside one token (emails, ID numbers split by the PDF).
	wordGapThreshold = 2.0
)

// LineBuilder reconstructs logical text lines from positioned fragments.
// Fragments that render on the same visual row are grouped by their Y
// coordinate rounded to the nearest integer unit, which absorbs sub-pixel
// jitter between glyphs of one row.
type LineBuilder struct{}

// NewLineBuilder creates a new line builder
func NewLineBuilder() *LineBuilder {
	return &LineBuilder{}
}

// BuildPageLines converts one page's fragments into ordered logical lines,
// top-to-bottom then left-to-right. Input order does not matter.
func (b *LineBuilder) BuildPageLines(fragments []TextFragment) []string {
	buckets := make(map[int][]TextFragment)

	for _, frag := range fragments {
		if strings.TrimSpace(frag.Text) == "" {
			continue
		}
		key := int(math.Round(frag.Y))
		buckets[key] = append(buckets[key], frag)
	}

	// PDF coordinates grow upward, so descending Y is reading order.
	keys := make([]int, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(keys)))

	var lines []string
	for _, key := range keys {
		if line := b.joinRow(buckets[key]); line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}

// joinRow concatenates one row's fragments left to right, inserting a space
// only where the fragments are visually separated.
func (b *LineBuilder) joinRow(row []TextFragment) string {
	sort.SliceStable(row, func(i, j int) bool {
		return row[i].X < row[j].X
	})

	var builder strings.Builder
	prevEnd := math.Inf(-1)

	for _, frag := range row {
		gap := frag.X - prevEnd
		if builder.Len() > 0 && gap > wordGapThreshold {
			builder.WriteByte(' ')
		}
		builder.WriteString(frag.Text)
		prevEnd = frag.X + frag.Width
	}

	return normalizeSpacing(builder.String())
}

// normalizeSpacing collapses whitespace runs to a single space and trims.
func normalizeSpacing(line string) string {
	return strings.Join(strings.Fields(line), " ")
}

package roster

import (
	"regexp"
	"strings"
)

// Line classification rules. A line is tried against the skip rules first,
// then the metadata labels, then the student-row pattern. The row pattern is
// anchored: sequence number, 6-12 digit identifier, then the rest. Lines
// that merely contain digits (salon/footer lines) never match it.

var (
	studentRowPattern = regexp.MustCompile(`^(\d+)\s+(\d{6,12})\s+(.+)$`)

	salonPattern = regexp.MustCompile(`(?i)^SAL[ÓO]N:`)
	salonCourse  = regexp.MustCompile(`(?i)SAL[ÓO]N:\s*([A-Z0-9]+).*CURSO\s*ID:\s*(\d+)`)

	phonePattern = regexp.MustCompile(`(\+?\d[\d\s-]{6,}\d)`)
	nonPhoneChar = regexp.MustCompile(`[^\d+]`)
)

// skipPrefixes are report-header fields that start a line
var skipPrefixes = []string{
	"R.I.F",
	"SEDE:",
	"FECHA:",
	"PERIODO:",
	"SALÓN:",
	"SALON:",
}

// skipContains are letterhead / title fragments that can appear anywhere
var skipContains = []string{
	"CENTRO VENEZOLANO",
	"LISTA DE ALUMNOS",
}

// shouldSkipLine reports whether the line is known noise: letterhead, report
// title, header fields, salon assignments, or the column-header row.
func shouldSkipLine(line string) bool {
	up := strings.ToUpper(line)

	for _, fragment := range skipContains {
		if strings.Contains(up, fragment) {
			return true
		}
	}

	for _, prefix := range skipPrefixes {
		if strings.HasPrefix(up, prefix) {
			return true
		}
	}

	// Column header row, detected by two of its known column names
	if strings.Contains(up, "APELLIDOS") && strings.Contains(up, "EMAIL") {
		return true
	}

	return false
}

// metadataLabel returns the value after the first colon for a recognized
// metadata label, or ok=false. Label spelling variants are accepted.
func metadataLabel(line string, labels ...string) (string, bool) {
	for _, label := range labels {
		if strings.HasPrefix(line, label) {
			_, value, _ := strings.Cut(line, ":")
			return strings.TrimSpace(value), true
		}
	}
	return "", false
}

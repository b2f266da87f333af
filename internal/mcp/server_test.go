package mcp

import (
	"testing"

	"github.com/cevaztools/continuidad/internal/config"
	"github.com/cevaztools/continuidad/internal/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Version = "test"
	return cfg
}

func TestNewServer(t *testing.T) {
	cfg := testConfig()
	service := roster.NewService(cfg.MaxFileSize, cfg.TerminalLevel)

	srv, err := NewServer(cfg, service)
	require.NoError(t, err)
	require.NotNil(t, srv)
	assert.NotNil(t, srv.mcpServer)
}

func TestNewServer_NilService(t *testing.T) {
	srv, err := NewServer(testConfig(), nil)
	assert.Error(t, err)
	assert.Nil(t, srv)
}

func TestFormatComparison(t *testing.T) {
	result := &roster.ComparisonResult{
		TotalOld:      10,
		TotalNew:      8,
		EligibleOld:   9,
		Reenrolled:    6,
		ReenrolledPct: 67,
		Lost:          3,
		LostPct:       33,
		LostStudents: []roster.Student{
			{ID: "111", Name: "Ana Diaz", Category: "Adultos", LevelNorm: "L03",
				ScheduleBlock: "8:30 AM - 10:00 AM", Email: "ana@mail.com", Phone: "+5841255500"},
			{ID: "222", Name: "Luis Rojas", Category: "Adultos", LevelNorm: "L07",
				ScheduleBlock: "6:15 PM - 7:45 PM"},
		},
		LostByLevel:    map[string]int{"L03": 1, "L07": 2},
		LostBySchedule: map[string]int{"8:30 AM - 10:00 AM": 1, "6:15 PM - 7:45 PM": 2},
		TopLossBlock:   "6:15 PM - 7:45 PM",
	}

	text := FormatComparison(result)

	assert.Contains(t, text, "Previous period students: 10")
	assert.Contains(t, text, "Current period students: 8")
	assert.Contains(t, text, "Continuity base (non-graduated): 9")
	assert.Contains(t, text, "Re-enrolled: 6 (67%)")
	assert.Contains(t, text, "Lost: 3 (33%)")
	assert.Contains(t, text, "Schedule block with most losses: 6:15 PM - 7:45 PM")

	// Lost students come with their contact data when present
	assert.Contains(t, text, "1. Ana Diaz (111)")
	assert.Contains(t, text, "ana@mail.com")
	assert.Contains(t, text, "+5841255500")
	assert.Contains(t, text, "2. Luis Rojas (222)")

	assert.Contains(t, text, "L03: 1")
	assert.Contains(t, text, "L07: 2")
}

func TestFormatComparison_EmptyResult(t *testing.T) {
	text := FormatComparison(&roster.ComparisonResult{})

	assert.Contains(t, text, "Re-enrolled: 0 (0%)")
	assert.NotContains(t, text, "Lost students:")
	assert.NotContains(t, text, "Schedule block with most losses")
}

func TestFormatParseFileResult_ScannedWarning(t *testing.T) {
	cfg := testConfig()
	service := roster.NewService(cfg.MaxFileSize, cfg.TerminalLevel)
	srv, err := NewServer(cfg, service)
	require.NoError(t, err)

	result := &roster.ParseFileResult{
		Path:        "/rosters/scanned.pdf",
		Pages:       3,
		Size:        2048,
		ContentType: "scanned_images",
	}

	text := srv.formatParseFileResult(result)
	assert.Contains(t, text, "Students: 0")
	assert.Contains(t, text, "scanned document")
}

func TestFormatParseFileResult_Sections(t *testing.T) {
	cfg := testConfig()
	service := roster.NewService(cfg.MaxFileSize, cfg.TerminalLevel)
	srv, err := NewServer(cfg, service)
	require.NoError(t, err)

	result := &roster.ParseFileResult{
		Path:        "/rosters/adultos.pdf",
		Pages:       2,
		Size:        4096,
		ContentType: "text",
		Students: []roster.Student{
			{ID: "1", CourseID: "64161", LevelNorm: "L03", ScheduleBlock: "8:30 AM - 10:00 AM"},
			{ID: "2", CourseID: "64161", LevelNorm: "L03", ScheduleBlock: "8:30 AM - 10:00 AM"},
			{ID: "3", CourseID: "70222", LevelNorm: "L07", ScheduleBlock: "6:15 PM - 7:45 PM"},
		},
	}

	text := srv.formatParseFileResult(result)
	assert.Contains(t, text, "Students: 3")
	assert.Contains(t, text, "Sections:")

	// Both sections are under the alert threshold
	assert.Contains(t, text, "L03 | 8:30 AM - 10:00 AM | 2 students | "+roster.RiskAlert)
	assert.Contains(t, text, "L07 | 6:15 PM - 7:45 PM | 1 students | "+roster.RiskAlert)
}

func TestSortedKeys(t *testing.T) {
	keys := sortedKeys(map[string]int{"L07": 2, "L03": 1, "N/A": 4})
	assert.Equal(t, []string{"L03", "L07", "N/A"}, keys)
}

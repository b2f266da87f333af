package mcp

import (
	"context"
	"fmt"
	"sort"

	"github.com/cevaztools/continuidad/internal/config"
	"github.com/cevaztools/continuidad/internal/pdf"
	"github.com/cevaztools/continuidad/internal/roster"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server represents the MCP server instance
type Server struct {
	config        *config.Config
	rosterService *roster.Service
	mcpServer     *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, rosterService *roster.Service) (*Server, error) {
	if rosterService == nil {
		return nil, fmt.Errorf("rosterService cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:        cfg,
		rosterService: rosterService,
		mcpServer:     mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	parseFileTool := mcp.NewTool(
		"roster_parse_file",
		mcp.WithDescription("Parse an enrollment roster PDF into structured student records"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the roster PDF file"),
		),
	)
	s.mcpServer.AddTool(parseFileTool, s.handleRosterParseFile)

	compareFilesTool := mcp.NewTool(
		"roster_compare_files",
		mcp.WithDescription("Compare two roster periods and list non-graduated students who failed to re-enroll"),
		mcp.WithString("old_path",
			mcp.Required(),
			mcp.Description("Full path to the previous-period roster PDF"),
		),
		mcp.WithString("new_path",
			mcp.Required(),
			mcp.Description("Full path to the current-period roster PDF"),
		),
	)
	s.mcpServer.AddTool(compareFilesTool, s.handleRosterCompareFiles)

	validateFileTool := mcp.NewTool(
		"pdf_validate_file",
		mcp.WithDescription("Validate if a file is a readable PDF"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(validateFileTool, s.handlePDFValidateFile)

	searchDirectoryTool := mcp.NewTool(
		"roster_search_directory",
		mcp.WithDescription("Search for roster PDF files in a directory with optional fuzzy search"),
		mcp.WithString("directory",
			mcp.Description("Directory path to search (uses default if empty)"),
		),
		mcp.WithString("query",
			mcp.Description("Optional search query for fuzzy matching"),
		),
	)
	s.mcpServer.AddTool(searchDirectoryTool, s.handleRosterSearchDirectory)

	serverInfoTool := mcp.NewTool(
		"roster_server_info",
		mcp.WithDescription("Get server information, available tools, and usage guidance"),
	)
	s.mcpServer.AddTool(serverInfoTool, s.handleRosterServerInfo)
}

// Handler functions

func (s *Server) handleRosterParseFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.rosterService.ParseFile(roster.ParseFileRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatParseFileResult(result)), nil
}

func (s *Server) handleRosterCompareFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	oldPath, err := request.RequireString("old_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	newPath, err := request.RequireString("new_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.rosterService.CompareFiles(roster.CompareFilesRequest{
		OldPath: oldPath,
		NewPath: newPath,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(FormatComparison(result.Result)), nil
}

func (s *Server) handlePDFValidateFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.rosterService.ValidateFile(pdf.ValidateFileRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.Valid {
		responseText = fmt.Sprintf("PDF file %s is valid and readable", result.Path)
	} else {
		responseText = fmt.Sprintf("PDF validation failed for %s: %s", result.Path, result.Message)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleRosterSearchDirectory(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	args := request.GetArguments()

	directory := s.config.RosterDirectory // default
	if dir, ok := args["directory"].(string); ok && dir != "" {
		directory = dir
	}

	query := ""
	if q, ok := args["query"].(string); ok {
		query = q
	}

	result, err := s.rosterService.SearchDirectory(pdf.SearchDirectoryRequest{
		Directory: directory,
		Query:     query,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.TotalCount == 0 {
		responseText = fmt.Sprintf("No PDF files found in directory: %s", result.Directory)
		if result.SearchQuery != "" {
			responseText += fmt.Sprintf(" (searched for: %s)", result.SearchQuery)
		}
	} else {
		responseText = s.formatSearchDirectoryResult(result)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleRosterServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(s.formatServerInfo()), nil
}

// Formatting methods

func (s *Server) formatParseFileResult(result *roster.ParseFileResult) string {
	text := fmt.Sprintf("Parsed roster: %s\n", result.Path)
	text += fmt.Sprintf("Pages: %d\n", result.Pages)
	text += fmt.Sprintf("Size: %d bytes\n", result.Size)
	text += fmt.Sprintf("Students: %d\n", len(result.Students))

	if result.ContentType == "scanned_images" {
		text += "\n⚠️  WARNING: This PDF appears to be a scanned document with no text layer. " +
			"Student extraction is not possible without an embedded text layer.\n"
		return text
	}

	// Section overview with continuity risk per course
	type section struct {
		students int
		level    string
		schedule string
	}
	sections := make(map[string]*section)
	for _, st := range result.Students {
		key := st.CourseID
		if key == "" {
			key = st.LevelNorm + " " + st.ScheduleBlock
		}
		if sections[key] == nil {
			sections[key] = &section{level: st.LevelNorm, schedule: st.ScheduleBlock}
		}
		sections[key].students++
	}

	keys := make([]string, 0, len(sections))
	for key := range sections {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	if len(keys) > 0 {
		text += "\nSections:\n"
		for _, key := range keys {
			sec := sections[key]
			text += fmt.Sprintf("  %s | %s | %d students | %s\n",
				sec.level, sec.schedule, sec.students, roster.SectionRisk(sec.students))
		}
	}

	return text
}

// FormatComparison renders a comparison result as a human-readable report.
// Shared with the one-shot CLI.
func FormatComparison(result *roster.ComparisonResult) string {
	text := "Roster Continuity Comparison\n"
	text += fmt.Sprintf("Previous period students: %d\n", result.TotalOld)
	text += fmt.Sprintf("Current period students: %d\n", result.TotalNew)
	text += fmt.Sprintf("Continuity base (non-graduated): %d\n", result.EligibleOld)
	text += fmt.Sprintf("Re-enrolled: %d (%d%%)\n", result.Reenrolled, result.ReenrolledPct)
	text += fmt.Sprintf("Lost: %d (%d%%)\n", result.Lost, result.LostPct)

	if result.TopLossBlock != "" {
		text += fmt.Sprintf("Schedule block with most losses: %s\n", result.TopLossBlock)
	}

	if len(result.LostByLevel) > 0 {
		text += "\nLosses by level:\n"
		for _, level := range sortedKeys(result.LostByLevel) {
			text += fmt.Sprintf("  %s: %d\n", level, result.LostByLevel[level])
		}
	}

	if len(result.LostStudents) > 0 {
		text += "\nLost students:\n"
		for i, st := range result.LostStudents {
			text += fmt.Sprintf("%d. %s (%s) | %s | %s | %s", i+1, st.Name, st.ID, st.Category, st.LevelNorm, st.ScheduleBlock)
			if st.Email != "" {
				text += " | " + st.Email
			}
			if st.Phone != "" {
				text += " | " + st.Phone
			}
			text += "\n"
		}
	}

	return text
}

func (s *Server) formatSearchDirectoryResult(result *pdf.SearchDirectoryResult) string {
	text := fmt.Sprintf("Found %d PDF file(s) in directory: %s\n", result.TotalCount, result.Directory)
	if result.SearchQuery != "" {
		text += fmt.Sprintf("Search query: %s\n", result.SearchQuery)
	}
	text += "\nFiles:\n"

	for i, file := range result.Files {
		text += fmt.Sprintf("%d. %s\n", i+1, file.Name)
		text += fmt.Sprintf("   Path: %s\n", file.Path)
		text += fmt.Sprintf("   Size: %d bytes\n", file.Size)
		text += fmt.Sprintf("   Modified: %s\n", file.ModifiedTime)
		if i < len(result.Files)-1 {
			text += "\n"
		}
	}

	return text
}

func (s *Server) formatServerInfo() string {
	text := fmt.Sprintf("📋 %s v%s - Server Information\n", s.config.ServerName, s.config.Version)
	text += fmt.Sprintf("📁 Roster Directory: %s\n", s.config.RosterDirectory)
	text += fmt.Sprintf("🎓 Terminal Level: %s\n", s.config.TerminalLevel)
	text += fmt.Sprintf("📏 Max File Size: %d MB\n\n", s.config.MaxFileSize/(1024*1024))

	text += `🛠️  Available Tools:

• roster_search_directory
  Find roster PDF files in the configured directory (optional fuzzy query).

• pdf_validate_file
  Check that a file is a readable, non-corrupt PDF before parsing it.

• roster_parse_file
  Extract structured student records from one roster PDF. Reports a
  warning when the PDF is a scanned document without a text layer.

• roster_compare_files
  Compare a previous and a current period roster. Students at the
  terminal level are excluded as graduates; the remaining previous-period
  students are classified as re-enrolled or lost. Returns the full list
  of lost students with their contact data.

Workflow: search the directory, validate the two PDFs, then compare.
Scanned (image-only) PDFs cannot be processed; there is no OCR.`

	return text
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Run starts the MCP server over stdio
func (s *Server) Run(_ context.Context) error {
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

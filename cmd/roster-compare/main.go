package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/cevaztools/continuidad/internal/mcp"
	"github.com/cevaztools/continuidad/internal/roster"
)

var (
	oldPath       = flag.String("old", "", "Path to the previous-period roster PDF")
	newPath       = flag.String("new", "", "Path to the current-period roster PDF")
	terminalLevel = flag.String("terminal-level", "", "Normalized level of graduating students (default L19)")
	maxFileSize   = flag.Int64("max-file-size", 50*1024*1024, "Maximum PDF file size in bytes")
	outputFormat  = flag.String("format", "text", "Output format: text, json")
	help          = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	if *oldPath == "" || *newPath == "" {
		fmt.Fprintf(os.Stderr, "Error: both --old and --new roster PDFs are required\n\n")
		printUsage()
		os.Exit(1)
	}

	service := roster.NewService(*maxFileSize, *terminalLevel)

	result, err := service.CompareFiles(roster.CompareFilesRequest{
		OldPath: *oldPath,
		NewPath: *newPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error comparing rosters: %v\n", err)
		os.Exit(1)
	}

	if err := outputResults(result); err != nil {
		fmt.Fprintf(os.Stderr, "Error outputting results: %v\n", err)
		os.Exit(1)
	}
}

func outputResults(result *roster.CompareFilesResult) error {
	switch *outputFormat {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	case "text":
		fmt.Print(mcp.FormatComparison(result.Result))
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", *outputFormat)
	}
}

func printHelp() {
	fmt.Println("Roster Compare - find students who failed to re-enroll between two periods")
	fmt.Println()
	fmt.Println("Parses two enrollment roster PDFs, excludes graduated students from the")
	fmt.Println("previous period, and reports which remaining students are missing from")
	fmt.Println("the current period, with their contact data.")
	fmt.Println()
	printUsage()
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  --old             Previous-period roster PDF (required)")
	fmt.Println("  --new             Current-period roster PDF (required)")
	fmt.Println("  --terminal-level  Graduation level excluded from the base (default L19)")
	fmt.Println("  --max-file-size   Maximum PDF size in bytes")
	fmt.Println("  --format          Output format: text (default), json")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  roster-compare --old rosters/2025-1.pdf --new rosters/2025-2.pdf")
	fmt.Println("  roster-compare --old old.pdf --new new.pdf --format json")
	fmt.Println()
	fmt.Println("NOTES:")
	fmt.Println("  Scanned (image-only) PDFs have no extractable text layer and are")
	fmt.Println("  rejected with an explanatory error. There is no OCR.")
}

func printUsage() {
	fmt.Println("USAGE:")
	fmt.Println("  roster-compare --old <pdf> --new <pdf> [OPTIONS]")
}

func init() {
	flag.Usage = func() {
		printHelp()
	}
}

// package report renders a provisioning run summary to various formats (CSV, Markdown, plain text)
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/tbarron/m365prof/internal/tasks"
)

// errText renders a record error as a single CSV/markdown-safe cell.
func errText(err error) string {
	if err == nil {
		return ""
	}
	return strings.ReplaceAll(err.Error(), "\n", " ")
}

// ExportToCSV converts a RunSummary to CSV format with columns: Profile, Identity, Status, Error
func ExportToCSV(summary *tasks.RunSummary) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Profile", "Identity", "Status", "Error"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, result := range summary.Results {
		record := []string{
			result.ProfileName,
			result.Identity,
			result.Status.String(),
			errText(result.Err),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a RunSummary to Markdown format
func ExportToMarkdown(summary *tasks.RunSummary) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Provisioning Run %s\n\n", summary.RunID))
	buf.WriteString(fmt.Sprintf("**Created**: %d\n", summary.Created))
	buf.WriteString(fmt.Sprintf("**Failed**: %d\n\n", summary.Failed))

	buf.WriteString("## Records\n\n")
	for i, result := range summary.Results {
		name := result.ProfileName
		if name == "" {
			name = "(missing identity)"
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s", i+1, name, result.Status))
		if result.Err != nil {
			buf.WriteString(fmt.Sprintf(" (%s)", errText(result.Err)))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportToText converts a RunSummary to plain text format
func ExportToText(summary *tasks.RunSummary) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Run: %s\n", summary.RunID))
	buf.WriteString(fmt.Sprintf("Created: %d\n", summary.Created))
	buf.WriteString(fmt.Sprintf("Failed: %d\n\n", summary.Failed))

	for i, result := range summary.Results {
		name := result.ProfileName
		if name == "" {
			name = "(missing identity)"
		}
		buf.WriteString(fmt.Sprintf("%d. %s [%s]\n", i+1, name, result.Status))
	}

	return buf.Bytes(), nil
}

// WriteReport renders the summary in the given format ("csv", "markdown",
// "txt") and writes it to path.
func WriteReport(summary *tasks.RunSummary, format, path string) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case "csv":
		data, err = ExportToCSV(summary)
	case "markdown", "md":
		data, err = ExportToMarkdown(summary)
	case "txt", "text":
		data, err = ExportToText(summary)
	default:
		return fmt.Errorf("unsupported report format: %s", format)
	}
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}

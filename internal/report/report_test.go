package report

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tbarron/m365prof/internal/profile"
	"github.com/tbarron/m365prof/internal/tasks"
	tu "github.com/tbarron/m365prof/internal/testing"
)

func sampleSummary() *tasks.RunSummary {
	return &tasks.RunSummary{
		RunID:   "run-1234",
		Created: 1,
		Failed:  2,
		Results: []tasks.RecordResult{
			{
				Identity:    "alice@example.com",
				ProfileName: "M365 Profile - alice@example.com",
				Status:      profile.Created,
			},
			{
				Identity:    "bob@example.com",
				ProfileName: "M365 Profile - bob@example.com",
				Status:      profile.Skipped,
				Err:         errors.New("profile already exists"),
			},
			{
				Identity: "",
				Status:   profile.Failed,
				Err:      errors.New("row is missing an identity"),
			},
		},
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(sampleSummary())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Profile,Identity,Status,Error") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "M365 Profile - alice@example.com") {
			t.Errorf("CSV missing created profile row")
		}
		if !strings.Contains(output, "skipped") {
			t.Errorf("CSV missing skipped status")
		}
		if !strings.Contains(output, "profile already exists") {
			t.Errorf("CSV missing error text")
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(sampleSummary())
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "# Provisioning Run run-1234") {
			t.Errorf("markdown missing title, got: %s", output)
		}
		if !strings.Contains(output, "**Created**: 1") {
			t.Errorf("markdown missing created tally")
		}
		if !strings.Contains(output, "(missing identity)") {
			t.Errorf("markdown missing placeholder for identity-less row")
		}
		if !strings.Contains(output, "1. M365 Profile - alice@example.com - Created") {
			t.Errorf("markdown record line should use ASCII separators, got: %s", output)
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(sampleSummary())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Created: 1") || !strings.Contains(output, "Failed: 2") {
			t.Errorf("text missing tallies, got: %s", output)
		}
		if !strings.Contains(output, "[skipped]") {
			t.Errorf("text missing per-record status")
		}
	})
}

func TestWriteReport(t *testing.T) {
	t.Run("writes each supported format", func(t *testing.T) {
		tmpDir := t.TempDir()

		for _, format := range []string{"csv", "markdown", "txt"} {
			path := filepath.Join(tmpDir, "report."+format)
			if err := WriteReport(sampleSummary(), format, path); err != nil {
				t.Fatalf("WriteReport(%s) failed: %v", format, err)
			}
			tu.AssertFileExists(t, path)

			content := tu.MustReadFile(t, path)
			if !strings.Contains(content, "alice@example.com") {
				t.Errorf("%s report missing record content", format)
			}
		}
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.xml")
		if err := WriteReport(sampleSummary(), "xml", path); err == nil {
			t.Error("expected error for unsupported format")
		}
	})
}

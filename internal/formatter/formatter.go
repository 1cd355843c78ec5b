// package formatter renders resolution results in various formats (plain text, JSON, YAML, CSV, Markdown)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/desertthunder/playall/internal/models"
	"github.com/desertthunder/playall/internal/shared"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
)

// Formats lists the supported output formats.
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatYAML, FormatCSV, FormatMarkdown}
}

// Format renders results in the named format.
func Format(results []models.Result, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatText, "txt", "":
		return ResultsToText(results), nil
	case FormatJSON:
		return ResultsToJSON(results)
	case FormatYAML, "yml":
		return ResultsToYAML(results)
	case FormatCSV:
		return ResultsToCSV(results)
	case FormatMarkdown, "md":
		return ResultsToMarkdown(results), nil
	default:
		return nil, fmt.Errorf("%w: unknown format %q (want one of %s)", shared.ErrInvalidFlag, format, strings.Join(Formats(), ", "))
	}
}

// ResultsToText renders one line per result: "input -> playlist URL" or "input: error".
func ResultsToText(results []models.Result) []byte {
	var buf bytes.Buffer
	for _, r := range results {
		if r.OK() {
			buf.WriteString(fmt.Sprintf("%s -> %s\n", r.Input, r.PlaylistURL))
		} else {
			buf.WriteString(fmt.Sprintf("%s: %s\n", r.Input, r.Error))
		}
	}
	return buf.Bytes()
}

// ResultsToJSON renders results as an indented JSON array.
func ResultsToJSON(results []models.Result) ([]byte, error) {
	if results == nil {
		results = []models.Result{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal results: %w", err)
	}
	return append(data, '\n'), nil
}

// ResultsToYAML renders results as a YAML sequence.
func ResultsToYAML(results []models.Result) ([]byte, error) {
	if results == nil {
		results = []models.Result{}
	}
	data, err := yaml.Marshal(results)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return data, nil
}

// ResultsToCSV converts results to CSV with columns: Input, Kind, ChannelID, PlaylistURL, Method, Error
func ResultsToCSV(results []models.Result) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Input", "Kind", "ChannelID", "PlaylistURL", "Method", "Error"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, r := range results {
		record := []string{
			r.Input,
			r.Kind,
			r.ChannelID.String(),
			r.PlaylistURL,
			string(r.Method),
			r.Error,
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

// ResultsToMarkdown renders results as a Markdown table followed by a count summary.
func ResultsToMarkdown(results []models.Result) []byte {
	var buf bytes.Buffer

	buf.WriteString("# Uploads Playlists\n\n")
	buf.WriteString("| Input | Channel ID | Playlist | Method |\n")
	buf.WriteString("| --- | --- | --- | --- |\n")

	resolved := 0
	for _, r := range results {
		if r.OK() {
			resolved++
			buf.WriteString(fmt.Sprintf("| %s | `%s` | [%s](%s) | %s |\n",
				escapeCell(r.Input), r.ChannelID, strings.TrimPrefix(r.PlaylistURL, "https://"), r.PlaylistURL, r.Method))
		} else {
			buf.WriteString(fmt.Sprintf("| %s | | %s | |\n", escapeCell(r.Input), escapeCell(r.Error)))
		}
	}

	buf.WriteString(fmt.Sprintf("\n**Resolved**: %d of %d\n", resolved, len(results)))
	return buf.Bytes()
}

// WriteResults renders results in format and writes them to w.
func WriteResults(w io.Writer, results []models.Result, format string) error {
	data, err := Format(results, format)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return nil
}

// WriteResultsFile renders results in format and writes them to path.
func WriteResultsFile(path string, results []models.Result, format string) error {
	data, err := Format(results, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write results file: %w", err)
	}
	return nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

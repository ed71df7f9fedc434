// Package formatter renders markdown reports with tables aligned by display width.
package formatter

import (
	"strings"

	"jtsa/pkg/metadata"

	"github.com/mattn/go-runewidth"
)

// FormatMarkdown aligns the tables of a signed report and signs it again, keeping the
// provenance fields of the existing metadata block.
func FormatMarkdown(content string) (string, error) {
	meta, clean := metadata.Extract(content)

	var keep metadata.Metadata
	if meta != nil {
		keep = *meta
	}

	return metadata.Sign(AlignTables(clean), keep), nil
}

// AlignTables pads every markdown table in content so its pipes line up, counting East
// Asian wide characters as two columns.
func AlignTables(content string) string {
	lines := strings.Split(content, "\n")

	var formattedLines []string

	var tableBuffer []string

	for _, line := range lines {
		trimmedLine := strings.TrimSpace(line)

		// A table row starts and ends with a pipe.
		if strings.HasPrefix(trimmedLine, "|") && strings.HasSuffix(trimmedLine, "|") {
			tableBuffer = append(tableBuffer, line)

			continue
		}

		if len(tableBuffer) > 0 {
			formattedLines = append(formattedLines, processTable(tableBuffer)...)
			tableBuffer = nil
		}

		formattedLines = append(formattedLines, line)
	}

	if len(tableBuffer) > 0 {
		formattedLines = append(formattedLines, processTable(tableBuffer)...)
	}

	return strings.Join(formattedLines, "\n")
}

func processTable(rows []string) []string {
	// Header and separator are the minimum.
	if len(rows) < 2 {
		return rows
	}

	table := make([][]string, len(rows))
	for i, row := range rows {
		table[i] = splitRow(row)
	}

	sep := -1
	if isSeparator(table[1]) {
		sep = 1
	}

	widths := columnWidths(table, sep)

	out := make([]string, len(table))
	for i, cells := range table {
		out[i] = renderRow(cells, widths, i == sep)
	}

	return out
}

func splitRow(row string) []string {
	parts := strings.Split(strings.TrimSpace(row), "|")
	parts = parts[1 : len(parts)-1]

	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}

	return cells
}

func isSeparator(cells []string) bool {
	for _, c := range cells {
		if strings.Trim(c, "-: ") != "" {
			return false
		}
	}

	return true
}

func columnWidths(table [][]string, sep int) []int {
	n := 0
	for _, row := range table {
		n = max(n, len(row))
	}

	// Separators need at least three dashes.
	widths := make([]int, n)
	for i := range widths {
		widths[i] = 3
	}

	for r, row := range table {
		if r == sep {
			continue
		}

		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	return widths
}

func renderRow(cells []string, widths []int, separator bool) string {
	var sb strings.Builder

	sb.WriteString("|")

	for j, w := range widths {
		sb.WriteString(" ")

		switch {
		case separator:
			sb.WriteString(strings.Repeat("-", w))
		case j < len(cells):
			sb.WriteString(runewidth.FillRight(cells[j], w))
		default:
			sb.WriteString(strings.Repeat(" ", w))
		}

		sb.WriteString(" |")
	}

	return sb.String()
}

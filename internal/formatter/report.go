package formatter

import (
	"fmt"
	"strings"

	"jtsa/pkg/metadata"
)

// Report builds a markdown document section by section.
type Report struct {
	blocks []string
}

// NewReport starts a report with a level-one title.
func NewReport(title string) *Report {
	return &Report{blocks: []string{"# " + title}}
}

// Heading adds a level-two heading.
func (r *Report) Heading(text string) {
	r.blocks = append(r.blocks, "## "+text)
}

// Paragraph adds a formatted paragraph.
func (r *Report) Paragraph(format string, args ...any) {
	r.blocks = append(r.blocks, fmt.Sprintf(format, args...))
}

// Bullets adds a bullet list. Nothing is added for an empty list.
func (r *Report) Bullets(items ...string) {
	if len(items) == 0 {
		return
	}

	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = "- " + it
	}

	r.blocks = append(r.blocks, strings.Join(lines, "\n"))
}

// Table adds a table. An empty body renders as a short note instead.
func (r *Report) Table(header []string, rows [][]string) {
	if len(rows) == 0 {
		r.blocks = append(r.blocks, "_No data._")

		return
	}

	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, tableLine(header))

	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}

	lines = append(lines, tableLine(sep))

	for _, row := range rows {
		lines = append(lines, tableLine(row))
	}

	r.blocks = append(r.blocks, AlignTables(strings.Join(lines, "\n")))
}

// String returns the markdown text.
func (r *Report) String() string {
	return strings.Join(r.blocks, "\n\n") + "\n"
}

// Signed returns the markdown text followed by a metadata block.
func (r *Report) Signed(meta metadata.Metadata) string {
	return metadata.Sign(r.String(), meta)
}

var cellEscaper = strings.NewReplacer("|", "/", "\r\n", " ", "\n", " ")

func tableLine(cells []string) string {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = cellEscaper.Replace(c)
	}

	return "| " + strings.Join(escaped, " | ") + " |"
}

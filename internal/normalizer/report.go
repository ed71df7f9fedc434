package normalizer

import (
	"strconv"

	"jtsa/internal/formatter"
	"jtsa/pkg/metadata"
)

// Report renders the audit as a signed markdown document.
func (a *Audit) Report(meta metadata.Metadata) string {
	r := formatter.NewReport("Survey cleaning audit")
	r.Paragraph("%d respondents cleaned, %d answers kept as typed, %d choices cut by truncation.",
		a.Rows, a.UnmappedTotal(), a.Dropped())

	r.Heading("Unmapped values")

	unmapped := a.Unmapped()
	rows := make([][]string, len(unmapped))

	for i, u := range unmapped {
		rows[i] = []string{u.Column, u.Value, strconv.Itoa(u.Count)}
	}

	r.Table([]string{"Column", "Value", "Count"}, rows)

	r.Heading("Truncated multi-select answers")

	rows = make([][]string, len(a.Truncations))
	for i, tr := range a.Truncations {
		rows[i] = []string{tr.Source, strconv.Itoa(tr.Rows), strconv.Itoa(tr.Dropped)}
	}

	r.Table([]string{"Column", "Respondents", "Choices dropped"}, rows)

	if meta.Rows == 0 {
		meta.Rows = a.Rows
	}

	return r.Signed(meta)
}

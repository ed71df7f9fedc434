// Package textnorm builds lookup keys from free-text survey answers.
package textnorm

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"jtsa/internal/dataset"
)

// folder folds the accented letters seen in the questionnaire and drops currency symbols.
var folder = strings.NewReplacer(
	"à", "a", "â", "a", "ä", "a",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"ï", "i", "î", "i",
	"ô", "o",
	"ù", "u", "û", "u", "ū", "u",
	"ç", "c",
	"$", "", "€", "",
	"-", " ",
)

// Key canonicalizes s for table lookups: composed form, lower case, folded accents,
// no currency symbols, hyphens as spaces, no surrounding whitespace.
// Keys are never shown to users.
func Key(s string) string {
	s = norm.NFC.String(s)
	s = folder.Replace(strings.ToLower(s))

	return strings.TrimSpace(s)
}

// Cell is Key lifted over nullable cells.
func Cell(c dataset.Cell) dataset.Cell {
	if c.IsNull() {
		return dataset.Null
	}

	return dataset.String(Key(c.Value))
}

// Header collapses runs of whitespace so question texts compare equal across exports.
func Header(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

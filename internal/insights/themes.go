package insights

import (
	"sort"
	"strings"

	"jtsa/internal/dataset"
)

// Theme is a named keyword list searched in open answers.
type Theme struct {
	Name     string
	Keywords []string
}

// DefaultThemes are the themes of the improvement-ideas question. Keywords mix the
// questionnaire's languages.
var DefaultThemes = []Theme{
	{Name: "price", Keywords: []string{
		"price", "expensive", "cost", "budget", "prix", "moins cher", "offres", "tarifs", "coût", "abordables", "chère",
	}},
	{Name: "language", Keywords: []string{
		"language", "english", "translation", "anglais", "communiquer", "français", "langue", "anglaise", "étrangers",
	}},
	{Name: "information", Keywords: []string{"guide", "planning", "informée"}},
	{Name: "crowd", Keywords: []string{
		"crowded", "tourists", "overtourism", "moins de monde", "moins à la mode", "moins touristique",
	}},
	{Name: "transport", Keywords: []string{"transport", "train", "shinkansen", "flight", "métro", "vols"}},
	{Name: "Do NOT Change", Keywords: []string{
		"rien de plus", "attractif", "m’attirent", "rien", "sur la to do list", "perfect",
	}},
}

// ThemeCount is the number of keyword occurrences found for a theme.
type ThemeCount struct {
	Theme string
	Count int
}

// KeywordThemes counts non-overlapping keyword occurrences in the lower-cased, space-joined
// texts. Themes are returned by count, highest first; ties keep theme order.
func KeywordThemes(texts []string, themes []Theme) []ThemeCount {
	all := strings.ToLower(strings.Join(texts, " "))

	out := make([]ThemeCount, len(themes))

	for i, th := range themes {
		out[i].Theme = th.Name
		for _, kw := range th.Keywords {
			out[i].Count += strings.Count(all, strings.ToLower(kw))
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })

	return out
}

// Texts returns the non-null answers of a free-text column.
func Texts(t *dataset.Table, column string) ([]string, error) {
	cells, err := t.Column(column)
	if err != nil {
		return nil, err
	}

	var out []string

	for _, c := range cells {
		if !c.IsNull() {
			out = append(out, c.Value)
		}
	}

	return out, nil
}

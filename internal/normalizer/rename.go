package normalizer

import (
	"jtsa/internal/dataset"
	"jtsa/internal/models"
	"jtsa/internal/textnorm"
)

var questionIndex = func() map[string]string {
	out := make(map[string]string, len(models.QuestionColumns))
	for q, id := range models.QuestionColumns {
		out[textnorm.Header(q)] = id
	}

	return out
}()

// RenameQuestions replaces question-text headers with canonical identifiers. Headers that
// are already identifiers, or that match no question, are left alone.
func RenameQuestions(t *dataset.Table) error {
	renames := make(map[string]string)

	for _, h := range t.Columns() {
		if id, ok := questionIndex[textnorm.Header(h)]; ok && id != h {
			renames[h] = id
		}
	}

	if len(renames) == 0 {
		return nil
	}

	return t.RenameColumns(renames)
}

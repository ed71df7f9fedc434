package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jtsa/internal/dataset"
)

func TestKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Française ", "francaise"},
		{"Israélien", "israelien"},
		{"Hôtel classique (3-4 étoiles)", "hotel classique (3 4 etoiles)"},
		{"Moins de 1 500 €", "moins de 1 500"},
		{"Less than $550 (~€500)", "less than 550 (~500)"},
		{"Chūgoku", "chugoku"},
		{"Garçon", "garcon"},
		{"CHINE", "chine"},
		{"没兴趣", "没兴趣"},
		{"taxi-", "taxi"},
		{"", ""},
		// decomposed e + combining acute
		{"Core\u0301e du Sud", "coree du sud"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.in))
		})
	}
}

func TestKey_Idempotent(t *testing.T) {
	for _, s := range []string{"Taxi / VTC (Uber, Grab…)", "  -Été- ", "$ 1-2 €"} {
		once := Key(s)
		assert.Equal(t, once, Key(once), s)
	}
}

func TestCell(t *testing.T) {
	assert.True(t, Cell(dataset.Null).IsNull())
	assert.Equal(t, dataset.String("france"), Cell(dataset.String("FRANCE ")))
}

func TestHeader(t *testing.T) {
	assert.Equal(t,
		"Lorsque vous voyagez ? (Choisissez jusqu’à 3 réponses)",
		Header("  Lorsque vous voyagez ?\n(Choisissez jusqu’à 3 réponses)  "))
}

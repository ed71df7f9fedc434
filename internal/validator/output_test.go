package validator

import (
	"errors"
	"strings"
	"testing"

	"jtsa/internal/categories"
	"jtsa/internal/dataset"
	"jtsa/internal/mapping"
	"jtsa/internal/models"
	"jtsa/internal/normalizer"
	"jtsa/pkg/metadata"
)

var family = models.MultiSelectFamily{Source: "regions", Prefix: "regions", Width: 3}

func cleaned(t *testing.T, extra ...string) *dataset.Table {
	t.Helper()

	cols := append(family.Columns(), models.ColumnAgeGroup, models.ColumnRatingFood)

	return dataset.MustNew(append(cols, extra...)...)
}

func TestValidateTable(t *testing.T) {
	tests := []struct {
		name       string
		extra      []string
		rows       [][]string
		wantValid  bool
		wantErrors int
		wantWarn   int
	}{
		{
			name:      "clean table",
			rows:      [][]string{{"Kanto", "Kansai", "", "25-34", "5"}, {"", "", "", "", ""}},
			wantValid: true,
		},
		{
			name:      "discarded choice keeps later ranks",
			rows:      [][]string{{"", "Language", "", "25-34", "4"}, {"Kanto", "", "Kansai", "", ""}},
			wantValid: true,
		},
		{
			name:       "source column kept",
			extra:      []string{"regions"},
			rows:       [][]string{{"Kanto", "", "", "25-34", "3", "Kanto"}},
			wantErrors: 1,
		},
		{
			name:      "typed answers only warn",
			rows:      [][]string{{"Kanto", "", "", "about forty", "0"}, {"", "", "", "", "Essentiel"}},
			wantValid: true,
			wantWarn:  2,
		},
	}

	v := NewOutputValidator([]models.MultiSelectFamily{family}, categories.Default())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := cleaned(t, tt.extra...)
			for _, row := range tt.rows {
				if err := tbl.AppendStrings(row...); err != nil {
					t.Fatalf("AppendStrings() error = %v", err)
				}
			}

			res := v.ValidateTable(tbl)
			if res.IsValid != tt.wantValid {
				t.Errorf("IsValid = %v, want %v (%v)", res.IsValid, tt.wantValid, res.Errors)
			}

			if len(res.Errors) != tt.wantErrors {
				t.Errorf("errors = %v, want %d", res.Errors, tt.wantErrors)
			}

			if len(res.Warnings) != tt.wantWarn {
				t.Errorf("warnings = %v, want %d", res.Warnings, tt.wantWarn)
			}

			if res.Stats.TotalRows != len(tt.rows) {
				t.Errorf("TotalRows = %d", res.Stats.TotalRows)
			}
		})
	}
}

func TestValidateTable_MissingRankedColumn(t *testing.T) {
	v := NewOutputValidator([]models.MultiSelectFamily{family}, nil)

	res := v.ValidateTable(dataset.MustNew("regions_1", "regions_2"))
	if res.IsValid {
		t.Fatal("Expected invalid result")
	}

	if !errors.Is(res.Err(), ErrInvalidOutput) {
		t.Errorf("Err() = %v", res.Err())
	}

	if !strings.Contains(res.Err().Error(), "[regions_3]: ranked column is missing") {
		t.Errorf("Err() = %v", res.Err())
	}
}

func TestValidateIntegrity(t *testing.T) {
	signed := metadata.Sign("# Report\n", metadata.Metadata{RunID: "r"})

	if res := ValidateIntegrity(signed); !res.IsValid || res.Err() != nil {
		t.Errorf("signed report invalid: %v", res.Errors)
	}

	tampered := strings.Replace(signed, "# Report", "# Edited", 1)
	if res := ValidateIntegrity(tampered); res.IsValid {
		t.Error("tampered report accepted")
	}

	if !strings.HasPrefix(ValidateIntegrity(tampered).String(), "❌ INVALID") {
		t.Error("String() should flag the result")
	}
}

func TestValidateTable_CleanedDiscards(t *testing.T) {
	raw := dataset.MustNew(models.RequiredColumns...)

	row := make([]string, len(models.RequiredColumns))
	for i, col := range models.RequiredColumns {
		switch col {
		case models.ColumnJapanDifficulties:
			row[i] = "没兴趣, La barrière de la langue"
		case models.ColumnRegionPrefs:
			row[i] = "Je n’ai pas encore d’idée précise, j’ai besoin d’y réfléchir ou de me renseigner., Hokkaido"
		}
	}

	if err := raw.AppendStrings(row...); err != nil {
		t.Fatalf("AppendStrings() error = %v", err)
	}

	tables, err := mapping.DefaultTables()
	if err != nil {
		t.Fatalf("DefaultTables() error = %v", err)
	}

	p, err := normalizer.NewProcessor(tables)
	if err != nil {
		t.Fatalf("NewProcessor() error = %v", err)
	}

	clean, _, err := p.Process(raw)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if got := clean.Get(0, models.ColumnJapanDifficulties+"_2").String(); got != "Language" {
		t.Fatalf("%s_2 = %q, want Language", models.ColumnJapanDifficulties, got)
	}

	res := NewOutputValidator(normalizer.DefaultPlan().Families, categories.Default()).ValidateTable(clean)
	if err := res.Err(); err != nil {
		t.Errorf("ValidateTable() error = %v", err)
	}
}

package normalizer

import (
	"jtsa/internal/mapping"
	"jtsa/internal/models"
)

// Fallback selects what happens when a table resolves a value to null.
type Fallback int

// Fallbacks.
const (
	// FallbackRaw keeps the original answer when the table discards it.
	FallbackRaw Fallback = iota
	// FallbackNull honours explicit discards.
	FallbackNull
)

// ColumnRule resolves every cell of one or more columns through a mapping table.
type ColumnRule struct {
	Table    string
	Columns  []string
	Fallback Fallback
}

// Plan is the ordered list of cleaning steps. Steps run in field order:
// families are decomposed first, then direct, normalized and group rules apply.
type Plan struct {
	Families   []models.MultiSelectFamily
	Direct     []ColumnRule
	AgeColumn  string
	Normalized []ColumnRule
	Groups     []ColumnRule
}

func single(table, column string, fallback Fallback) ColumnRule {
	return ColumnRule{Table: table, Columns: []string{column}, Fallback: fallback}
}

// DefaultPlan returns the cleaning plan of the travel questionnaire.
func DefaultPlan() Plan {
	plan := Plan{
		Families:  models.MultiSelectFamilies,
		AgeColumn: models.ColumnAgeGroup,
		Direct: []ColumnRule{
			single(mapping.TableFamilySituation, models.ColumnFamilySituation, FallbackRaw),
			single(mapping.TableIncome, models.ColumnHouseholdIncome, FallbackRaw),
			single(mapping.TableTravelFrequency, models.ColumnTravelFrequency, FallbackRaw),
			single(mapping.TableBeenToJapan, models.ColumnBeenToJapan, FallbackRaw),
			single(mapping.TableVacationDuration, models.ColumnJapanVacDuration, FallbackRaw),
			{Table: mapping.TableRating, Columns: models.RatingColumns, Fallback: FallbackNull},
			single(mapping.TableBudget, models.ColumnJapanBudget, FallbackRaw),
			single(mapping.TableBudget, models.ColumnAltDestBudget, FallbackRaw),
		},
		Normalized: []ColumnRule{
			single(mapping.TableCountry, models.ColumnNationality, FallbackRaw),
			single(mapping.TableCountry, models.ColumnCountry, FallbackRaw),
			single(mapping.TableJapanAccommodation, models.ColumnJapanAccommodation, FallbackRaw),
			single(mapping.TableAltDestination, models.ColumnAltDestination, FallbackRaw),
			single(mapping.TableAltDestReason, models.ColumnAltDestReason, FallbackRaw),
			single(mapping.TableAltDestAccommodation, models.ColumnAltDestAccommodation, FallbackRaw),
			single(mapping.TableAltDestTransport, models.ColumnAltDestTransport, FallbackRaw),
			single(mapping.TableTripPrep, models.ColumnTripPrep, FallbackRaw),
			single(mapping.TableBookingChannel, models.ColumnBookingChannel, FallbackRaw),
			single(mapping.TableInfluentialReason, models.ColumnInfluentialReason, FallbackRaw),
		},
	}

	groupTables := map[string]string{
		models.ColumnRegionPrefs:         mapping.TableRegionPreference,
		models.ColumnJapanDifficulties:   mapping.TableJapanDifficulties,
		models.ColumnAltDestDifficulties: mapping.TableAltDestDifficulties,
	}

	for _, f := range plan.Families {
		plan.Groups = append(plan.Groups, ColumnRule{
			Table:    groupTables[f.Source],
			Columns:  f.Columns(),
			Fallback: FallbackNull,
		})
	}

	return plan
}

// rules returns every column rule in execution order.
func (p Plan) rules() []ColumnRule {
	out := make([]ColumnRule, 0, len(p.Direct)+len(p.Normalized)+len(p.Groups))
	out = append(out, p.Direct...)
	out = append(out, p.Normalized...)

	return append(out, p.Groups...)
}

// DroppedColumns are the raw multi-select columns removed by Finalize.
func (p Plan) DroppedColumns() []string {
	out := make([]string, 0, len(p.Families))
	for _, f := range p.Families {
		out = append(out, f.Source)
	}

	return out
}

// OutputColumns returns the header a run produces for input columns in.
func (p Plan) OutputColumns(in []string) []string {
	dropped := make(map[string]bool, len(p.Families))
	for _, c := range p.DroppedColumns() {
		dropped[c] = true
	}

	out := make([]string, 0, len(in)+len(p.Families)*models.RankedWidth)

	for _, c := range in {
		if !dropped[c] {
			out = append(out, c)
		}
	}

	for _, f := range p.Families {
		out = append(out, f.Columns()...)
	}

	return out
}

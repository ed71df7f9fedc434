package mapping

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// Names of the built-in tables.
const (
	TableCountry              = "country"
	TableFamilySituation      = "family_situation"
	TableIncome               = "household_income"
	TableTravelFrequency      = "travel_frequency"
	TableBeenToJapan          = "been_to_japan"
	TableVacationDuration     = "japan_vac_duration"
	TableRegionPreference     = "region_preference"
	TableRating               = "rating"
	TableBudget               = "budget"
	TableJapanAccommodation   = "japan_accommodation"
	TableJapanDifficulties    = "japan_difficulties"
	TableAltDestination       = "alternative_destination"
	TableAltDestReason        = "alt_dest_reason"
	TableAltDestAccommodation = "alt_dest_accommodation"
	TableAltDestTransport     = "alt_dest_transportation"
	TableTripPrep             = "trip_prep"
	TableBookingChannel       = "booking_channel"
	TableInfluentialReason    = "influential_reason"
	TableAltDestDifficulties  = "alt_dest_difficulties"
)

//go:embed tables.yaml
var defaultTablesYAML []byte

// Tables is an immutable bundle of named mapping tables.
type Tables struct {
	byName map[string]*Table
}

// NewTables bundles tables by name.
func NewTables(tables ...*Table) (*Tables, error) {
	b := &Tables{byName: make(map[string]*Table, len(tables))}

	for _, t := range tables {
		if _, exists := b.byName[t.Name()]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTable, t.Name())
		}

		b.byName[t.Name()] = t
	}

	return b, nil
}

// Get returns the named table.
func (b *Tables) Get(name string) (*Table, error) {
	t, ok := b.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, name)
	}

	return t, nil
}

// Names returns the table names, sorted.
func (b *Tables) Names() []string {
	out := make([]string, 0, len(b.byName))
	for name := range b.byName {
		out = append(out, name)
	}

	sort.Strings(out)

	return out
}

type tablesFile struct {
	Tables map[string]tableSpec `yaml:"tables"`
}

type tableSpec struct {
	Keying  Keying             `yaml:"keying"`
	Entries map[string]*string `yaml:"entries"`
}

// ParseTables decodes a YAML bundle. A `~` target is an explicit discard.
func ParseTables(data []byte) (*Tables, error) {
	var file tablesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse mapping tables: %w", err)
	}

	names := make([]string, 0, len(file.Tables))
	for name := range file.Tables {
		names = append(names, name)
	}

	sort.Strings(names)

	tables := make([]*Table, 0, len(names))

	for _, name := range names {
		def := file.Tables[name]

		t, err := NewTable(name, def.Keying, def.Entries)
		if err != nil {
			return nil, err
		}

		tables = append(tables, t)
	}

	return NewTables(tables...)
}

var (
	defaultOnce   sync.Once
	defaultTables *Tables
	defaultErr    error
)

// DefaultTables returns the tables compiled into the binary.
func DefaultTables() (*Tables, error) {
	defaultOnce.Do(func() {
		defaultTables, defaultErr = ParseTables(defaultTablesYAML)
	})

	return defaultTables, defaultErr
}

package insights

import (
	"fmt"
	"sort"

	"jtsa/internal/dataset"
)

// Step narrows a funnel to rows where Column equals Value. An empty Value picks the most
// frequent value among the rows still in the funnel.
type Step struct {
	Column string
	Value  string
}

// Stage is the state of a funnel after one step.
type Stage struct {
	Step           string
	Value          string
	Remaining      int
	ConversionRate float64
}

// Funnel applies the steps in order. It stops early once no rows remain.
func Funnel(t *dataset.Table, steps []Step) ([]Stage, error) {
	if len(steps) == 0 {
		return nil, ErrNoSteps
	}

	for _, s := range steps {
		if !t.Has(s.Column) {
			return nil, fmt.Errorf("funnel: %w: %q", dataset.ErrUnknownColumn, s.Column)
		}
	}

	start := t.Len()
	current := t

	var stages []Stage

	for _, s := range steps {
		if current.Len() == 0 {
			break
		}

		value := s.Value
		if value == "" {
			value = topValue(current, s.Column)
		}

		prev := current
		current = prev.Filter(func(i int) bool {
			c := prev.Get(i, s.Column)

			return !c.IsNull() && c.Value == value
		})

		stages = append(stages, Stage{
			Step:           s.Column,
			Value:          value,
			Remaining:      current.Len(),
			ConversionRate: percent(current.Len(), start),
		})
	}

	return stages, nil
}

// SegmentResult is the end-to-end conversion of one segment.
type SegmentResult struct {
	Segment        string
	Start          int
	End            int
	ConversionRate float64
}

// SegmentedFunnel runs the funnel separately for each non-null value of segmentCol. Top
// values are picked within each segment. Results are sorted by conversion, best first.
func SegmentedFunnel(t *dataset.Table, steps []Step, segmentCol string) ([]SegmentResult, error) {
	segments, err := Options(t, segmentCol, nil)
	if err != nil {
		return nil, err
	}

	out := make([]SegmentResult, 0, len(segments))

	for _, seg := range segments {
		rows := t.Filter(func(i int) bool {
			c := t.Get(i, segmentCol)

			return !c.IsNull() && c.Value == seg
		})

		stages, err := Funnel(rows, steps)
		if err != nil {
			return nil, err
		}

		end := rows.Len()
		if len(stages) > 0 {
			end = stages[len(stages)-1].Remaining
		}

		out = append(out, SegmentResult{
			Segment:        seg,
			Start:          rows.Len(),
			End:            end,
			ConversionRate: percent(end, rows.Len()),
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].ConversionRate > out[j].ConversionRate })

	return out, nil
}

func topValue(t *dataset.Table, column string) string {
	cells, _ := t.Column(column)

	counts := countCells(column, cells, nil)
	if len(counts) == 0 {
		return ""
	}

	return counts[0].Value
}

package mapping

import (
	"strconv"
	"strings"

	"jtsa/internal/dataset"
	"jtsa/internal/textnorm"
)

// Age band labels, youngest first.
const (
	AgeUnder18   = "18 and less"
	Age18To24    = "18-24"
	Age25To34    = "25-34"
	Age35To44    = "35-44"
	Age45To54    = "45-54"
	Age55To64    = "55-64"
	Age65AndOver = "65 and over"
	AgeUnknown   = "Unknown"
)

// AgeBands lists every label AgeBucket can return, in ordinal order.
var AgeBands = []string{
	AgeUnder18, Age18To24, Age25To34, Age35To44, Age45To54, Age55To64, Age65AndOver, AgeUnknown,
}

var ageBands = []struct {
	from  int
	label string
}{
	{65, Age65AndOver},
	{55, Age55To64},
	{45, Age45To54},
	{35, Age35To44},
	{25, Age25To34},
	{18, Age18To24},
}

var under18Phrases = []string{"moins de 18", "less than 18", "under 18", "< 18", "<18"}

// AgeBucket reads the leading number of an age-range answer ("25-34 ans", "65+") and returns
// its band. Ages below 18 and "under 18" style answers land in AgeUnder18; text without a
// usable number is AgeUnknown. Null stays null.
func AgeBucket(raw dataset.Cell) dataset.Cell {
	if raw.IsNull() {
		return dataset.Null
	}

	text := strings.TrimSpace(raw.Value)

	age, ok := leadingNumber(text)
	if !ok {
		key := textnorm.Key(text)
		for _, phrase := range under18Phrases {
			if strings.HasPrefix(key, phrase) {
				return dataset.String(AgeUnder18)
			}
		}

		return dataset.String(AgeUnknown)
	}

	for _, band := range ageBands {
		if age >= band.from {
			return dataset.String(band.label)
		}
	}

	return dataset.String(AgeUnder18)
}

func leadingNumber(s string) (int, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	if end == 0 {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}

	return n, true
}

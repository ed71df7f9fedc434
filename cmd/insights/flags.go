package main

import (
	"errors"
	"fmt"
	"strings"

	"jtsa/internal/config"
)

var errBadFilter = errors.New("filter must look like column=value|value")

// filterFlag collects repeated -filter column=a|b flags.
type filterFlag map[string][]string

func (f filterFlag) String() string {
	parts := make([]string, 0, len(f))
	for col, values := range f {
		parts = append(parts, col+"="+strings.Join(values, "|"))
	}

	return strings.Join(parts, " ")
}

func (f filterFlag) Set(s string) error {
	col, values, ok := strings.Cut(s, "=")
	col = strings.TrimSpace(col)

	if !ok || col == "" {
		return fmt.Errorf("%w: %q", errBadFilter, s)
	}

	for _, v := range strings.Split(values, "|") {
		if v = strings.TrimSpace(v); v != "" {
			f[col] = append(f[col], v)
		}
	}

	return nil
}

// parseFunnel reads "col=value,col" into steps. A step without a value follows the most
// frequent answer.
func parseFunnel(s string) ([]config.FunnelStep, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var steps []config.FunnelStep

	for _, part := range strings.Split(s, ",") {
		col, value, _ := strings.Cut(part, "=")
		col = strings.TrimSpace(col)

		if col == "" {
			return nil, fmt.Errorf("%w: %q", config.ErrFunnelStepMissingCol, part)
		}

		steps = append(steps, config.FunnelStep{Column: col, Value: strings.TrimSpace(value)})
	}

	return steps, nil
}

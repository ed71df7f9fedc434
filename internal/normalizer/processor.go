// Package normalizer turns a raw survey snapshot into the cleaned, column-stable table.
package normalizer

import (
	"fmt"

	"jtsa/internal/dataset"
	"jtsa/internal/logger"
	"jtsa/internal/mapping"
	"jtsa/internal/models"
)

// Processor renames, validates, cleans and finalizes a snapshot.
type Processor struct {
	validator   *Validator
	transformer *Transformer
	plan        Plan
	log         *logger.Logger
}

// Option configures a Processor.
type Option func(*processorOptions)

type processorOptions struct {
	plan     Plan
	required []string
	log      *logger.Logger
}

// WithPlan replaces the default cleaning plan.
func WithPlan(plan Plan) Option {
	return func(o *processorOptions) { o.plan = plan }
}

// WithRequiredColumns replaces the default required column list.
func WithRequiredColumns(cols []string) Option {
	return func(o *processorOptions) { o.required = cols }
}

// WithLogger sets the logger used for progress and audit messages.
func WithLogger(log *logger.Logger) Option {
	return func(o *processorOptions) { o.log = log }
}

// NewProcessor creates a processor over the given mapping tables.
func NewProcessor(tables *mapping.Tables, opts ...Option) (*Processor, error) {
	o := processorOptions{
		plan:     DefaultPlan(),
		required: models.RequiredColumns,
		log:      logger.Discard(),
	}

	for _, opt := range opts {
		opt(&o)
	}

	transformer, err := NewTransformer(tables, o.plan)
	if err != nil {
		return nil, err
	}

	return &Processor{
		validator:   NewValidator(o.required, o.plan.Families),
		transformer: transformer,
		plan:        o.plan,
		log:         o.log,
	}, nil
}

// Process cleans a copy of raw. raw itself is never modified. Either the whole snapshot is
// cleaned or an error is returned and no table is produced.
func (p *Processor) Process(raw *dataset.Table) (*dataset.Table, *Audit, error) {
	if raw == nil {
		return nil, nil, ErrNilTable
	}

	out := raw.Clone()

	// 1. Canonical headers
	if err := RenameQuestions(out); err != nil {
		return nil, nil, fmt.Errorf("rename failed: %w", err)
	}

	// 2. Validate the input data
	if err := p.validator.Validate(out); err != nil {
		return nil, nil, fmt.Errorf("validation failed: %w", err)
	}

	// 3. Transform the data
	audit := newAudit(out.Len())
	if err := p.transformer.Transform(out, audit); err != nil {
		return nil, nil, fmt.Errorf("transformation failed: %w", err)
	}

	// 4. Drop the raw multi-select columns
	if err := Finalize(out, p.plan); err != nil {
		return nil, nil, err
	}

	for _, tr := range audit.Truncations {
		p.log.Warn("multi-select answers truncated",
			"column", tr.Source, "rows", tr.Rows, "dropped", tr.Dropped)
	}

	for _, u := range audit.Unmapped() {
		p.log.Debug("unmapped value kept", "column", u.Column, "value", u.Value, "count", u.Count)
	}

	p.log.Info("snapshot cleaned",
		"rows", out.Len(), "columns", len(out.Columns()), "unmapped", audit.UnmappedTotal())

	return out, audit, nil
}

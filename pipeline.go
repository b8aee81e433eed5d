// pipeline.go
package main

import (
	"context"
	"fmt"
)

// Pipeline orchestrates one scatter-gather run: Aggregator over the
// registered sources, then ReportStage over the produced aggregate. Sources
// are registered once and immutable for the pipeline's lifetime; each
// Execute call owns all of its per-run state, so concurrent runs do not
// interfere.
type Pipeline struct {
	Sources     []Descriptor
	Analysis    SourceInvoker
	Concurrency int
}

// Execute runs the full pipeline. The only error it returns is a
// *ValidationError raised before any worker is invoked; after validation it
// never aborts early — even an all-fail aggregate still reaches the
// analysis worker, which may produce a meaningful degraded report.
func (p *Pipeline) Execute(ctx context.Context, topics TopicSet) (*PipelineResult, error) {
	if err := p.validate(topics); err != nil {
		return nil, err
	}

	aggregate := Aggregator{Concurrency: p.Concurrency}.Run(ctx, p.Sources, topics)
	report := ReportStage{Analysis: p.Analysis}.Run(ctx, aggregate, topics)

	return &PipelineResult{Aggregate: aggregate, Report: report}, nil
}

func (p *Pipeline) validate(topics TopicSet) error {
	if topics.Len() == 0 {
		return &ValidationError{Message: "topic set is empty"}
	}
	if p.Analysis == nil {
		return &ValidationError{Message: "no analysis worker configured"}
	}

	seen := make(map[string]bool, len(p.Sources))
	for _, source := range p.Sources {
		if source.ID == "" {
			return &ValidationError{Message: "source with empty id"}
		}
		if source.ID == AnalysisSourceID {
			return &ValidationError{Message: fmt.Sprintf("source id %q is reserved", AnalysisSourceID)}
		}
		if source.Invoker == nil {
			return &ValidationError{Message: fmt.Sprintf("source %s has no invoker", source.ID)}
		}
		if seen[source.ID] {
			return &ValidationError{Message: fmt.Sprintf("duplicate source id %s", source.ID)}
		}
		seen[source.ID] = true
	}

	return nil
}

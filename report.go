// report.go
package main

import (
	"context"
	"encoding/json"
	"log"
)

// AnalysisSourceID tags the downstream analysis worker's outcome.
const AnalysisSourceID = "analysis"

// reportRequest is the document the analysis worker receives: the topic set
// plus the complete aggregate, failure records included — the analysis step
// must see which sources failed.
type reportRequest struct {
	Topics  string     `json:"topics"`
	Sources *Aggregate `json:"sources"`
}

// ReportStage feeds the aggregate to the analysis worker through the same
// invoke+decode path as any gather source. An analysis failure is a normal
// Fail outcome, never pipeline-fatal.
type ReportStage struct {
	Analysis SourceInvoker
}

// Run serializes the aggregate and returns the analysis outcome.
func (r ReportStage) Run(ctx context.Context, aggregate *Aggregate, topics TopicSet) Outcome {
	payload, err := json.Marshal(reportRequest{Topics: topics.Join(), Sources: aggregate})
	if err != nil {
		return Fail(AnalysisSourceID, StageInvocation, "encoding aggregate: "+err.Error())
	}

	log.Printf("→ Analyzing %d source records...", aggregate.Len())
	return evaluate(ctx, AnalysisSourceID, r.Analysis, string(payload))
}

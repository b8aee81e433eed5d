// types.go
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Stage identifies which boundary a source failed at.
type Stage string

const (
	StageInvocation Stage = "invocation"
	StageDecode     Stage = "decode"
)

// FailureRecord describes why a single source produced no usable payload.
type FailureRecord struct {
	SourceID string `json:"source_id"`
	Stage    Stage  `json:"stage"`
	Message  string `json:"message"`
}

// Outcome is the per-source result carried as data: either a decoded
// payload or a FailureRecord, never both.
type Outcome struct {
	Data    map[string]any
	Failure *FailureRecord
}

// Ok wraps a decoded payload.
func Ok(data map[string]any) Outcome {
	return Outcome{Data: data}
}

// Fail wraps a failure record for the given source and stage.
func Fail(sourceID string, stage Stage, message string) Outcome {
	return Outcome{Failure: &FailureRecord{SourceID: sourceID, Stage: stage, Message: message}}
}

// OK reports whether the outcome carries decoded data.
func (o Outcome) OK() bool {
	return o.Failure == nil
}

// MarshalJSON encodes an outcome as either {"ok":true,"data":…} or
// {"ok":false,"error":…} so downstream analysis always sees which it got.
func (o Outcome) MarshalJSON() ([]byte, error) {
	if o.Failure != nil {
		return json.Marshal(struct {
			OK    bool           `json:"ok"`
			Error *FailureRecord `json:"error"`
		}{false, o.Failure})
	}
	return json.Marshal(struct {
		OK   bool           `json:"ok"`
		Data map[string]any `json:"data"`
	}{true, o.Data})
}

// Aggregate maps source IDs to outcomes, preserving registration order.
// Every registered source contributes exactly one entry.
type Aggregate struct {
	ids  []string
	byID map[string]Outcome
}

func newAggregate(capacity int) *Aggregate {
	return &Aggregate{
		ids:  make([]string, 0, capacity),
		byID: make(map[string]Outcome, capacity),
	}
}

func (a *Aggregate) add(sourceID string, outcome Outcome) {
	if _, exists := a.byID[sourceID]; !exists {
		a.ids = append(a.ids, sourceID)
	}
	a.byID[sourceID] = outcome
}

// Outcome returns the outcome recorded for a source.
func (a *Aggregate) Outcome(sourceID string) (Outcome, bool) {
	outcome, ok := a.byID[sourceID]
	return outcome, ok
}

// SourceIDs returns the source IDs in registration order.
func (a *Aggregate) SourceIDs() []string {
	ids := make([]string, len(a.ids))
	copy(ids, a.ids)
	return ids
}

// Len returns the number of entries.
func (a *Aggregate) Len() int {
	return len(a.ids)
}

// MarshalJSON encodes the aggregate as a JSON object whose keys appear in
// registration order, so the analysis worker sees sources in the order they
// were registered.
func (a *Aggregate) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range a.ids {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(a.byID[id])
		if err != nil {
			return nil, fmt.Errorf("encoding outcome for %s: %w", id, err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// PipelineResult is the terminal output of one pipeline run: the complete
// per-source aggregate plus the analysis outcome. An all-fail aggregate is a
// normal result, not an error.
type PipelineResult struct {
	Aggregate *Aggregate `json:"aggregate"`
	Report    Outcome    `json:"report"`
}

// ValidationError reports caller-supplied input rejected before any worker
// was invoked. It is the only failure Execute surfaces as an error.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

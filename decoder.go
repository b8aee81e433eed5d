// decoder.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// DecodeResult turns one raw worker result into an Outcome. Nothing escapes
// this boundary: every failure class is returned as data.
//
// Failure classes are distinguished deliberately: a decode fault means "this
// payload's shape cannot be trusted", while a well-formed payload with
// success:false means the source tried and reported its own failure, which
// is valid data the analysis worker may still want to see.
func DecodeResult(sourceID, raw string, invokeErr error) Outcome {
	if invokeErr != nil {
		return Fail(sourceID, StageInvocation, invokeErr.Error())
	}

	text := strings.TrimSpace(raw)
	if !gjson.Valid(text) {
		return Fail(sourceID, StageDecode, "malformed payload")
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		// Valid JSON but not an object (scalar or array).
		return Fail(sourceID, StageDecode, "malformed payload")
	}

	if !gjson.Get(text, "success").Exists() {
		return Fail(sourceID, StageDecode, "missing success field")
	}

	return Ok(payload)
}

// evaluate runs one worker through invoke+decode. A panicking worker is
// converted to an invocation failure here so it cannot take down the batch.
func evaluate(ctx context.Context, sourceID string, invoker SourceInvoker, input string) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = Fail(sourceID, StageInvocation, fmt.Sprintf("worker panic: %v", r))
		}
	}()

	raw, err := invoker.Invoke(ctx, input)
	return DecodeResult(sourceID, raw, err)
}

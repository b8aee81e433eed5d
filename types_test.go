package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcomeMarshalJSON(t *testing.T) {
	ok, err := json.Marshal(Ok(map[string]any{"success": true}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok": true, "data": {"success": true}}`, string(ok))

	fail, err := json.Marshal(Fail("newsB", StageInvocation, "timeout"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok": false, "error": {"source_id": "newsB", "stage": "invocation", "message": "timeout"}}`, string(fail))
}

func TestAggregateMarshalPreservesRegistrationOrder(t *testing.T) {
	aggregate := newAggregate(3)
	aggregate.add("zebra", Ok(map[string]any{"success": true}))
	aggregate.add("alpha", Fail("alpha", StageDecode, "malformed payload"))
	aggregate.add("mango", Ok(map[string]any{"success": false}))

	encoded, err := json.Marshal(aggregate)
	require.NoError(t, err)

	// Key order must follow registration, not the alphabetical order the
	// stdlib map encoding would produce.
	var keys []string
	decoder := json.NewDecoder(strings.NewReader(string(encoded)))
	tok, err := decoder.Token()
	require.NoError(t, err)
	require.Equal(t, json.Delim('{'), tok)
	for decoder.More() {
		tok, err := decoder.Token()
		require.NoError(t, err)
		keys = append(keys, tok.(string))

		var value json.RawMessage
		require.NoError(t, decoder.Decode(&value))
	}
	assert.Equal(t, []string{"zebra", "alpha", "mango"}, keys)
}

func TestAggregateAccessors(t *testing.T) {
	aggregate := newAggregate(2)
	aggregate.add("a", Ok(map[string]any{"success": true}))
	aggregate.add("b", Fail("b", StageInvocation, "timeout"))

	assert.Equal(t, 2, aggregate.Len())
	assert.Equal(t, []string{"a", "b"}, aggregate.SourceIDs())

	outcome, found := aggregate.Outcome("b")
	require.True(t, found)
	assert.False(t, outcome.OK())

	_, found = aggregate.Outcome("missing")
	assert.False(t, found)
}

package outcome

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinitionsComplete(t *testing.T) {
	seen := make(map[string]bool)
	for _, o := range All() {
		assert.NotEmpty(t, o.String(), "code %d", o.Code())
		assert.NotEmpty(t, o.Severity(), "outcome %s", o)
		assert.NotEmpty(t, DefaultMessages().Text(o), "outcome %s", o)
		assert.False(t, seen[o.String()], "duplicate name %s", o)
		seen[o.String()] = true
	}
}

func TestStableCodes(t *testing.T) {
	tests := []struct {
		outcome Outcome
		code    int
	}{
		{Identical, 0},
		{ColumnCountMismatch, 1},
		{RowCountMismatch, 2},
		{RowCountTolerated, 3},
		{SchemaMismatch, 4},
		{TypeMismatch, 5},
		{Validated, 6},
		{ValuesDiffer, 7},
		{SortKeyMissing, 8},
		{TypeMismatchTolerated, 9},
		{AggregateMismatch, 10},
	}

	for _, tt := range tests {
		t.Run(tt.outcome.String(), func(t *testing.T) {
			assert.Equal(t, tt.code, tt.outcome.Code())
		})
	}
}

func TestSeverity(t *testing.T) {
	assert.True(t, ColumnCountMismatch.Fatal())
	assert.True(t, RowCountTolerated.Tolerated())
	assert.True(t, TypeMismatchTolerated.Tolerated())
	assert.False(t, ValuesDiffer.Fatal())
	assert.False(t, Validated.Fatal())
	assert.True(t, Outcome(99).Fatal())
}

func TestParse(t *testing.T) {
	o, err := Parse(" Schema_Mismatch ")
	require.NoError(t, err)
	assert.Equal(t, SchemaMismatch, o)

	_, err = Parse("nope")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "identical")
}

func TestTextMarshaling(t *testing.T) {
	data, err := json.Marshal(map[string]Outcome{"outcome": AggregateMismatch})
	require.NoError(t, err)
	assert.JSONEq(t, `{"outcome":"aggregate_mismatch"}`, string(data))

	var decoded struct {
		Outcome Outcome `json:"outcome"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"outcome":"values_differ"}`), &decoded))
	assert.Equal(t, ValuesDiffer, decoded.Outcome)

	_, err = Outcome(42).MarshalText()
	assert.Error(t, err)
}

func TestMessagesWith(t *testing.T) {
	base := DefaultMessages()

	custom, err := base.With(map[string]string{"values_differ": "Reports differ."})
	require.NoError(t, err)
	assert.Equal(t, "Reports differ.", custom.Text(ValuesDiffer))
	assert.Equal(t, base.Text(Identical), custom.Text(Identical))
	assert.NotEqual(t, "Reports differ.", base.Text(ValuesDiffer))

	_, err = base.With(map[string]string{"unknown": "x"})
	assert.Error(t, err)

	_, err = base.With(map[string]string{"identical": ""})
	assert.Error(t, err)
}

func TestZeroMessagesFallBack(t *testing.T) {
	var m Messages
	assert.Equal(t, DefaultMessages().Text(Validated), m.Text(Validated))
}

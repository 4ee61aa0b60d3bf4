package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellValueRoundTrip(t *testing.T) {
	values := []CellValue{
		{},
		NumberValue(42),
		NumberValue(-3.25),
		TextValue("hello"),
		TextValue(""),
		BoolValue(true),
		BoolValue(false),
		DateValue(time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)),
	}
	for _, v := range values {
		data, err := json.Marshal(v)
		require.NoError(t, err)

		var got CellValue
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, v, got, "round trip of %s", data)
	}
}

func TestCellValueTextNumberDistinct(t *testing.T) {
	// A text cell holding "42" must not come back as a number.
	data, err := json.Marshal(TextValue("42"))
	require.NoError(t, err)

	var got CellValue
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, KindText, got.Kind)
	assert.Equal(t, "42", got.Text)
}

func TestCellValueUnknownKindMarshalsPlaceholder(t *testing.T) {
	v := CellValue{Kind: ValueKind(99)}
	assert.False(t, v.Valid())

	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `"#VALUE?"`, string(data))
}

func TestCellValueUnmarshalRejectsUnknownObject(t *testing.T) {
	var v CellValue
	assert.Error(t, json.Unmarshal([]byte(`{"blob":"x"}`), &v))
}

func TestCellValueString(t *testing.T) {
	assert.Equal(t, "", CellValue{}.String())
	assert.Equal(t, "1.5", NumberValue(1.5).String())
	assert.Equal(t, "TRUE", BoolValue(true).String())
	assert.Equal(t, "Revenue", TextValue("Revenue").String())
}

func TestTableGeometry(t *testing.T) {
	a := Table{R1: 1, C1: 1, R2: 5, C2: 3}
	b := Table{R1: 8, C1: 1, R2: 10, C2: 2}
	c := Table{R1: 5, C1: 3, R2: 7, C2: 4}

	assert.False(t, a.Overlaps(&b))
	assert.False(t, b.Overlaps(&a))
	assert.True(t, a.Overlaps(&c), "shared corner cell intersects")

	assert.True(t, a.Contains(1, 1))
	assert.True(t, a.Contains(5, 3))
	assert.False(t, a.Contains(6, 1))
	assert.False(t, a.Contains(5, 4))
}

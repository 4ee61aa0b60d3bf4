package detect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hioki-d/xlsdoc/pkg/xlsdoc/models"
)

func vals(vs ...any) []models.CellValue {
	out := make([]models.CellValue, len(vs))
	for i, v := range vs {
		out[i] = literal(v)
	}
	return out
}

func TestClassifyHeader(t *testing.T) {
	tests := []struct {
		name       string
		first      []models.CellValue
		second     []models.CellValue
		header     bool
		confidence float64
	}{
		{
			name:       "all text over numbers",
			first:      vals("Item", "Amount"),
			second:     vals("Rent", 1200),
			header:     true,
			confidence: 0.9,
		},
		{
			name:       "all text over dates",
			first:      vals("Event", "When"),
			second:     vals("Launch", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)),
			header:     true,
			confidence: 0.9,
		},
		{
			name:       "mixed first row leans header",
			first:      vals("Item", 2024),
			second:     vals("Rent", 1200),
			header:     true,
			confidence: 0.5,
		},
		{
			name:       "text over text is uncertain header",
			first:      vals("Name", "City"),
			second:     vals("Ada", "London"),
			header:     true,
			confidence: 0.5,
		},
		{
			name:   "all numeric first row is data",
			first:  vals(1, 2),
			second: vals(3, 4),
			header: false,
		},
		{
			name:   "empty first row is data",
			first:  vals(nil, nil),
			second: vals(1, 2),
			header: false,
		},
		{
			name:       "text with empty gaps still header",
			first:      vals("Item", nil, "Amount"),
			second:     vals("Rent", nil, 1200),
			header:     true,
			confidence: 0.9,
		},
		{
			name:       "no second row leans header",
			first:      vals("Item", "Amount"),
			second:     nil,
			header:     true,
			confidence: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyHeader(tt.first, tt.second)
			assert.Equal(t, tt.header, got.Header)
			if tt.header {
				assert.InDelta(t, tt.confidence, got.Confidence, 1e-9)
			}
		})
	}
}

func TestClassifyHeaderDeterministic(t *testing.T) {
	first := vals("A", 1, "B")
	second := vals(2, 3, 4)
	a := ClassifyHeader(first, second)
	b := ClassifyHeader(first, second)
	assert.Equal(t, a, b)
}

package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimitMap_Set(t *testing.T) {
	tests := []struct {
		name     string
		minutes  float64
		expected int64
		present  bool
	}{
		{"whole minutes", 90, 5400, true},
		{"fraction floors", 30.9, 1800, true},
		{"below one minute rounds up to one", 0.5, 60, true},
		{"zero clears", 0, 0, false},
		{"negative clears", -10, 0, false},
		{"NaN clears", math.NaN(), 0, false},
		{"huge value is capped", 1e300, maxLimitMinutes * 60, true},
		{"infinity is capped", math.Inf(1), maxLimitMinutes * 60, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limits := LimitMap{"p": 7200}
			limits.Set("p", tt.minutes)

			got, ok := limits.Get("p")
			assert.Equal(t, tt.present, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLimitMap_Adjust(t *testing.T) {
	t.Run("absent limit starts from zero", func(t *testing.T) {
		limits := LimitMap{}
		assert.Equal(t, int64(3600), limits.Adjust("p", 1))
	})

	t.Run("absent limit decreased lands on one minute", func(t *testing.T) {
		limits := LimitMap{}
		assert.Equal(t, int64(60), limits.Adjust("p", -1))
		_, ok := limits.Get("p")
		assert.True(t, ok)
	})

	t.Run("repeated decreases never go below one minute", func(t *testing.T) {
		limits := LimitMap{"p": 7200}
		for i := 0; i < 5; i++ {
			limits.Adjust("p", -1)
		}
		got, _ := limits.Get("p")
		assert.Equal(t, int64(60), got)
	})

	t.Run("huge deltas stay in range", func(t *testing.T) {
		limits := LimitMap{"p": 7200}
		assert.Equal(t, maxLimitMinutes*60, limits.Adjust("p", math.MaxInt64))
		assert.Equal(t, maxLimitMinutes*60, limits.Adjust("p", math.MaxInt64))
		assert.Equal(t, int64(60), limits.Adjust("p", math.MinInt64))
	})

	t.Run("increase adds hours", func(t *testing.T) {
		limits := LimitMap{"p": 1800}
		assert.Equal(t, int64(1800+2*3600), limits.Adjust("p", 2))
	})
}

func TestLimitMap_RemoveAndClone(t *testing.T) {
	limits := LimitMap{"a": 60, "b": 120, "zero": 0}
	clone := limits.Clone()
	limits.Remove("a")

	_, ok := limits.Get("a")
	assert.False(t, ok)
	assert.Equal(t, LimitMap{"a": 60, "b": 120}, clone)
}

func TestNewBudget(t *testing.T) {
	b := NewBudget(1800, 7200)

	assert.InDelta(t, 25.0, b.Percent, 1e-9)
	assert.InDelta(t, 25.0, b.RawPercent, 1e-9)
	assert.InDelta(t, 1.5, b.RemainingHours, 1e-9)
	assert.False(t, b.Exceeded)

	t.Run("over budget clamps display values", func(t *testing.T) {
		b := NewBudget(9000, 3600)
		assert.Equal(t, 100.0, b.Percent)
		assert.InDelta(t, 250.0, b.RawPercent, 1e-9)
		assert.Equal(t, 0.0, b.RemainingHours)
		assert.True(t, b.Exceeded)
	})
}

func TestLimitMap_Progress(t *testing.T) {
	limits := LimitMap{"p": 7200}

	b, ok := limits.Progress("p", 1800)
	assert.True(t, ok)
	assert.InDelta(t, 25.0, b.Percent, 1e-9)

	_, ok = limits.Progress("other", 1800)
	assert.False(t, ok)
}

package score

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultiply(t *testing.T) {
	a := FromValues(map[string]float64{"http": 0.9, "async": 0.5, "dio": 0.3})
	b := FromValues(map[string]float64{"http": 0.8, "async": 0.4})

	got := Multiply(a, b)

	assert.Len(t, got, 2)
	assert.InDelta(t, 0.72, got.Get("http"), 1e-9)
	assert.InDelta(t, 0.20, got.Get("async"), 1e-9)
	assert.False(t, got.Contains("dio"), "keys missing from any operand must be dropped")
}

func TestMultiplyEmptyOperandEliminatesAll(t *testing.T) {
	a := FromValues(map[string]float64{"http": 0.9})
	got := Multiply(a, New())
	assert.Empty(t, got)
}

func TestMax(t *testing.T) {
	a := FromValues(map[string]float64{"http": 0.3, "async": 0.5})
	b := FromValues(map[string]float64{"http": 0.7, "dio": 0.2})

	got := Max(a, b)

	assert.Len(t, got, 3)
	assert.Equal(t, 0.7, got.Get("http"))
	assert.Equal(t, 0.5, got.Get("async"))
	assert.Equal(t, 0.2, got.Get("dio"))
}

func TestAddValues(t *testing.T) {
	s := FromValues(map[string]float64{"http": 0.5})
	s.AddValues(FromValues(map[string]float64{"http": 0.5, "async": 1.0}), 0.8)

	assert.InDelta(t, 0.9, s.Get("http"), 1e-9)
	assert.InDelta(t, 0.8, s.Get("async"), 1e-9)
}

func TestRemoveLowValues(t *testing.T) {
	s := FromValues(map[string]float64{"a": 1.0, "b": 0.25, "c": 0.19, "d": 0.005})

	got := s.RemoveLowValues(0.2, 0.01)

	assert.True(t, got.Contains("a"))
	assert.True(t, got.Contains("b"))
	assert.False(t, got.Contains("c"), "below fraction*max")
	assert.False(t, got.Contains("d"), "below minValue floor")
}

func TestRemoveLowValuesFloorDominates(t *testing.T) {
	s := FromValues(map[string]float64{"a": 0.4, "b": 0.3})

	// fraction*max = 0.2 but the absolute floor is higher.
	got := s.RemoveLowValues(0.5, 0.35)
	assert.True(t, got.Contains("a"))
	assert.False(t, got.Contains("b"))
}

func TestMinMaxValue(t *testing.T) {
	assert.Equal(t, 0.0, New().MaxValue())
	assert.Equal(t, 0.0, New().MinValue())

	s := FromValues(map[string]float64{"a": 0.4, "b": 0.1, "c": 0.9})
	assert.Equal(t, 0.9, s.MaxValue())
	assert.Equal(t, 0.1, s.MinValue())
}

func TestProject(t *testing.T) {
	s := FromValues(map[string]float64{"a": 1.0, "b": 0.5, "c": 0.2})

	got := s.Project(map[string]struct{}{"a": {}, "c": {}, "missing": {}})

	assert.Equal(t, Score{"a": 1.0, "c": 0.2}, got)
}

func TestTopKeysDeterministic(t *testing.T) {
	s := FromValues(map[string]float64{"zeta": 0.5, "alpha": 0.5, "top": 0.9, "low": 0.1})

	want := []string{"top", "alpha", "zeta", "low"}
	for i := 0; i < 5; i++ {
		if got := s.TopKeys(); !reflect.DeepEqual(got, want) {
			t.Fatalf("TopKeys() = %v, want %v", got, want)
		}
	}
}

func TestFromValuesNil(t *testing.T) {
	s := FromValues(nil)
	assert.NotNil(t, s)
	assert.Empty(t, s)
}

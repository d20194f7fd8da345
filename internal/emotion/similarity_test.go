package emotion

import (
	"math"
	"testing"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b Vector
		want float64
	}{
		{name: "zero vector", a: Vector{}, b: Vector{1, 0, 0, 0}, want: 0},
		{name: "both zero", a: Vector{}, b: Vector{}, want: 0},
		{name: "identical", a: Vector{0.7, 0.3, 0, 0}, b: Vector{0.7, 0.3, 0, 0}, want: 1},
		{name: "scaled", a: Vector{1, 1, 0, 0}, b: Vector{2, 2, 0, 0}, want: 1},
		{name: "orthogonal", a: Vector{1, 0, 0, 0}, b: Vector{0, 0, 1, 0}, want: 0},
		{name: "uniform vs one-hot", a: Uniform(), b: Vector{1, 0, 0, 0}, want: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Similarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > tolerance {
				t.Errorf("Similarity(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	vectors := []Vector{
		{},
		Uniform(),
		{0.05, 0.05, 0.40, 0.50},
		{0.90, 0.07, 0.01, 0.01},
		{0.3, 0, 0, 0.7},
		{0.12, 0.5, 0.33, 0.049},
	}

	for _, a := range vectors {
		for _, b := range vectors {
			ab := Similarity(a, b)
			ba := Similarity(b, a)
			if ab != ba {
				t.Errorf("Similarity(%v, %v) = %v but reversed = %v", a, b, ab, ba)
			}
			if ab < 0 || ab > 1+tolerance {
				t.Errorf("Similarity(%v, %v) = %v, want within [0,1]", a, b, ab)
			}
		}
	}
}

func TestVector_Helpers(t *testing.T) {
	v := Vector{0.1, 0.6, 0.2, 0.1}

	if v.Dominant() != Angry {
		t.Errorf("Dominant() = %s, want angry", v.Dominant())
	}
	if got := v.Coordinates(); len(got) != Dimensions || got[1] != 0.6 {
		t.Errorf("Coordinates() = %v", got)
	}
	if got := v.Map()["sad"]; got != 0.2 {
		t.Errorf("Map()[sad] = %v, want 0.2", got)
	}
	if (Vector{}).Dominant() != Happy {
		t.Error("Dominant() of zero vector should be the first dimension")
	}
	if Dimension(7).String() != "dimension(7)" {
		t.Errorf("unexpected name %q", Dimension(7).String())
	}
}

func TestMean(t *testing.T) {
	got := Mean([]Vector{
		{0, 0.1, 0.9, 0},
		{0, 0.2, 0.8, 0},
		{0, 0, 1, 0},
	})
	want := Vector{0, 0.1, 0.9, 0}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("Mean()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if !Mean(nil).IsZero() {
		t.Errorf("Mean(nil) = %v, want zero", Mean(nil))
	}
}

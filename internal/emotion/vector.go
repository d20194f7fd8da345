// Package emotion extracts lexicon-based emotion vectors from lyric text
// and compares them with cosine similarity.
package emotion

import (
	"fmt"
	"math"

	"github.com/muesli/clusters"
)

// Dimension indexes one emotion category of a Vector.
type Dimension int

// Emotion dimensions, in vector order.
const (
	Happy Dimension = iota
	Angry
	Sad
	Calm
)

// Dimensions is the number of emotion categories.
const Dimensions = 4

var dimensionNames = [Dimensions]string{"happy", "angry", "sad", "calm"}

// String returns the lowercase category name.
func (d Dimension) String() string {
	if d < 0 || int(d) >= Dimensions {
		return fmt.Sprintf("dimension(%d)", int(d))
	}
	return dimensionNames[d]
}

// AllDimensions returns the dimensions in vector order.
func AllDimensions() []Dimension {
	return []Dimension{Happy, Angry, Sad, Calm}
}

// Vector is a 4-dimensional emotion profile ordered [happy, angry, sad, calm].
type Vector [Dimensions]float64

// Uniform returns the vector with equal weight on every dimension.
func Uniform() Vector {
	return Vector{0.25, 0.25, 0.25, 0.25}
}

// Get returns the value for a dimension.
func (v Vector) Get(d Dimension) float64 {
	return v[d]
}

// Sum returns the total of all components.
func (v Vector) Sum() float64 {
	var s float64
	for _, x := range v {
		s += x
	}
	return s
}

// Dot returns the dot product of two vectors.
func (v Vector) Dot(o Vector) float64 {
	var s float64
	for i := range v {
		s += v[i] * o[i]
	}
	return s
}

// Norm returns the Euclidean length of the vector.
func (v Vector) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// IsZero reports whether every component is zero.
func (v Vector) IsZero() bool {
	return v == Vector{}
}

// Dominant returns the dimension with the largest value.
// Ties resolve to the earlier dimension.
func (v Vector) Dominant() Dimension {
	best := Happy
	for _, d := range AllDimensions() {
		if v[d] > v[best] {
			best = d
		}
	}
	return best
}

// Mean returns the component-wise average of vs, or the zero vector when vs
// is empty.
func Mean(vs []Vector) Vector {
	var m Vector
	if len(vs) == 0 {
		return m
	}
	for _, v := range vs {
		for i := range m {
			m[i] += v[i]
		}
	}
	for i := range m {
		m[i] /= float64(len(vs))
	}
	return m
}

// Coordinates converts the vector for use with k-means clustering.
func (v Vector) Coordinates() clusters.Coordinates {
	return clusters.Coordinates{v[Happy], v[Angry], v[Sad], v[Calm]}
}

// Map returns the vector keyed by dimension name.
func (v Vector) Map() map[string]float64 {
	m := make(map[string]float64, Dimensions)
	for _, d := range AllDimensions() {
		m[d.String()] = v[d]
	}
	return m
}

// String formats the vector with two decimals per component.
func (v Vector) String() string {
	return fmt.Sprintf("[happy=%.2f angry=%.2f sad=%.2f calm=%.2f]", v[Happy], v[Angry], v[Sad], v[Calm])
}

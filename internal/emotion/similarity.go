package emotion

// Similarity returns the cosine similarity of two vectors.
// It returns 0 when either vector has zero length.
func Similarity(a, b Vector) float64 {
	normA := a.Norm()
	normB := b.Norm()
	if normA == 0 || normB == 0 {
		return 0
	}
	return a.Dot(b) / (normA * normB)
}

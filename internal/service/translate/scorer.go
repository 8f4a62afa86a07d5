package translate

import "github.com/heartmarshall/vocabindex/internal/domain"

// Scorer turns the attestations of a candidate translation into a quality
// score. Implementations must be deterministic and monotonic: adding an
// attestation never lowers the score.
type Scorer interface {
	Score(atts []domain.Attestation) float64
}

// ScorerFunc adapts an ordinary function to Scorer.
type ScorerFunc func(atts []domain.Attestation) float64

// Score implements Scorer.
func (f ScorerFunc) Score(atts []domain.Attestation) float64 { return f(atts) }

// GroupQualityScorer credits each distinct group once, with the best quality
// it attests plus one. Repeated attestations within a group do not add up,
// so a single source cannot inflate a candidate. Negative qualities count as
// zero.
type GroupQualityScorer struct{}

// Score implements Scorer.
func (GroupQualityScorer) Score(atts []domain.Attestation) float64 {
	best := make(map[int64]int, len(atts))
	for _, a := range atts {
		q := max(a.Quality, 0)
		if cur, ok := best[a.Group]; !ok || q > cur {
			best[a.Group] = q
		}
	}

	var total int
	for _, q := range best {
		total += q + 1
	}
	return float64(total)
}

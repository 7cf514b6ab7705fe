// Package sentiment scores short texts with a lexicon-based polarity analyzer.
package sentiment

// Scores holds the polarity scores of one text.
// Negative, Neutral and Positive are proportions; Compound is the normalized
// overall polarity in [-1, 1].
type Scores struct {
	Negative float64
	Neutral  float64
	Positive float64
	Compound float64
}

// Analyzer scores text. Implementations are stateless per call.
type Analyzer interface {
	PolarityScores(text string) Scores
}

// Factory constructs an Analyzer.
type Factory func() Analyzer

// Func adapts a plain function to Analyzer.
type Func func(text string) Scores

// PolarityScores implements Analyzer.
func (f Func) PolarityScores(text string) Scores { return f(text) }

// Compound scores text with a and returns its compound score clamped to [-1, 1].
func Compound(a Analyzer, text string) float64 {
	return min(1, max(-1, a.PolarityScores(text).Compound))
}

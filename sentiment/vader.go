package sentiment

import "github.com/jonreiter/govader"

type vader struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVader returns an Analyzer backed by the VADER lexicon.
// Building one loads the lexicon, so callers should reuse it across texts.
func NewVader() Analyzer {
	return &vader{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *vader) PolarityScores(text string) Scores {
	s := v.analyzer.PolarityScores(text)
	return Scores{
		Negative: s.Negative,
		Neutral:  s.Neutral,
		Positive: s.Positive,
		Compound: s.Compound,
	}
}

// Package scoring implements the resume/job fit engine: TF-IDF similarity,
// keyword matching, skill gap analysis and the weighted score combinator.
//
// Every function in this package is pure. Nothing here performs I/O, keeps
// state between calls or reads global configuration; callers pass an Options
// value explicitly.
package scoring

const (
	DefaultSimilarityWeight = 0.6
	DefaultKeywordWeight    = 0.4
	DefaultMaxFeatures      = 1000
	DefaultNGramMin         = 1
	DefaultNGramMax         = 2
)

// Weights controls the linear combination performed by Combine.
// They are expected to sum to 1.0 but are never checked or normalized.
type Weights struct {
	Similarity float64 `json:"similarity" mapstructure:"similarity-weight"`
	Keyword    float64 `json:"keyword" mapstructure:"keyword-weight"`
}

// DefaultWeights returns the 0.6 similarity / 0.4 keyword split.
func DefaultWeights() Weights {
	return Weights{
		Similarity: DefaultSimilarityWeight,
		Keyword:    DefaultKeywordWeight,
	}
}

// Options configures the similarity vector space and the combinator.
type Options struct {
	Weights Weights
	// MaxFeatures caps the vocabulary to the most frequent terms of the corpus.
	MaxFeatures int
	NGramMin    int
	NGramMax    int
	// StopWords are merged into the built-in English list.
	StopWords []string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Weights:     DefaultWeights(),
		MaxFeatures: DefaultMaxFeatures,
		NGramMin:    DefaultNGramMin,
		NGramMax:    DefaultNGramMax,
	}
}

// withDefaults fills zero-valued vector space settings. Weights are left as is.
func (o Options) withDefaults() Options {
	if o.MaxFeatures <= 0 {
		o.MaxFeatures = DefaultMaxFeatures
	}
	if o.NGramMin <= 0 {
		o.NGramMin = DefaultNGramMin
	}
	if o.NGramMax <= 0 {
		o.NGramMax = DefaultNGramMax
	}
	if o.NGramMax < o.NGramMin {
		o.NGramMax = o.NGramMin
	}
	return o
}

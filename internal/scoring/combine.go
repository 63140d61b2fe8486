package scoring

// FinalScore is the weighted fit score together with its inputs.
type FinalScore struct {
	FinalScore      float64 `json:"final_score"`
	SimilarityScore float64 `json:"similarity_score"`
	KeywordScore    float64 `json:"keyword_score"`
	Weights         Weights `json:"weights"`
}

// Combine returns w.Similarity*similarityScore + w.Keyword*keywordScore rounded
// to 2 decimals.
//
// Weights are a caller precondition: they are not validated, normalized or
// clamped, so weights outside [0,1] can yield a score outside [0,100].
func Combine(similarityScore, keywordScore float64, w Weights) FinalScore {
	return FinalScore{
		FinalScore:      round2(w.Similarity*similarityScore + w.Keyword*keywordScore),
		SimilarityScore: similarityScore,
		KeywordScore:    keywordScore,
		Weights:         w,
	}
}

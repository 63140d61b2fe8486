package scoring

// MatchResult is the outcome of MatchKeywords.
type MatchResult struct {
	Score         float64  `json:"score"`
	MatchedCount  int      `json:"matched_count"`
	TotalRequired int      `json:"total_required"`
	MatchedSkills []string `json:"matched_skills"`
}

// MatchKeywords scores the share of distinct required job skills present in
// the resume skills, case-insensitively.
//
// MatchedSkills follows the order and casing of jobSkills. Note that
// AnalyzeGap takes matched skill casing from resumeSkills instead; both are
// kept for output compatibility.
//
// A job without required skills scores 0 with TotalRequired 0.
func MatchKeywords(resumeSkills, jobSkills []string) MatchResult {
	jobSet := NewSkillSet(jobSkills)
	if jobSet.Len() == 0 {
		return MatchResult{MatchedSkills: []string{}}
	}

	matched := NewSkillSet(resumeSkills).Intersect(jobSet)

	return MatchResult{
		Score:         percentage(matched.Len(), jobSet.Len()),
		MatchedCount:  matched.Len(),
		TotalRequired: jobSet.Len(),
		MatchedSkills: filterBySet(jobSkills, matched),
	}
}

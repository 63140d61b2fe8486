package scoring

// GapResult is the skill breakdown produced by AnalyzeGap.
type GapResult struct {
	MissingSkills []string `json:"missing_skills"`
	MatchedSkills []string `json:"matched_skills"`
	MissingCount  int      `json:"missing_count"`
	MatchedCount  int      `json:"matched_count"`
	TotalRequired int      `json:"total_required"`
	GapPercentage float64  `json:"gap_percentage"`
}

// AnalyzeGap lists the required skills the resume lacks and the ones it covers.
//
// MissingSkills keeps the order and casing of jobSkills, MatchedSkills keeps
// the order and casing of resumeSkills. GapPercentage is the share of distinct
// required skills that are missing, 0 when nothing is required.
func AnalyzeGap(resumeSkills, jobSkills []string) GapResult {
	resumeSet := NewSkillSet(resumeSkills)
	jobSet := NewSkillSet(jobSkills)

	missing := jobSet.Minus(resumeSet)
	matched := resumeSet.Intersect(jobSet)

	missingSkills := filterBySet(jobSkills, missing)
	matchedSkills := filterBySet(resumeSkills, matched)

	return GapResult{
		MissingSkills: missingSkills,
		MatchedSkills: matchedSkills,
		MissingCount:  len(missingSkills),
		MatchedCount:  len(matchedSkills),
		TotalRequired: len(jobSkills),
		GapPercentage: percentage(missing.Len(), jobSet.Len()),
	}
}

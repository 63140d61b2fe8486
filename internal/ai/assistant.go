package ai

import "context"

// AdviceRequest carries the computed analysis an Advisor elaborates on.
// Scores are produced by the engine and are never recomputed by the advisor.
type AdviceRequest struct {
	ReportID      string
	ResumeText    string
	JobText       string
	FinalScore    float64
	MatchedSkills []string
	MissingSkills []string
	GapPercentage float64
}

type LearningResource struct {
	Skill      string `json:"skill" mapstructure:"skill"`
	Suggestion string `json:"suggestion" mapstructure:"suggestion"`
}

type Recommendations struct {
	Summary    string             `json:"summary" mapstructure:"summary"`
	Priorities []string           `json:"priorities,omitempty" mapstructure:"priorities"`
	Resources  []LearningResource `json:"resources,omitempty" mapstructure:"resources"`
	ResumeTips []string           `json:"resume_tips,omitempty" mapstructure:"resume_tips"`
	Raw        string             `json:"-" mapstructure:"-"`
}

type Advisor interface {
	Advise(ctx context.Context, req *AdviceRequest) (*Recommendations, error)
}

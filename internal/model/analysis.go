package model

import (
	"time"

	"readypulse/internal/forces"
)

// AnalysisSnapshot persists one organizational rollup for a survey.
// The embedded analysis is immutable; a new batch produces a new
// snapshot that replaces this one.
type AnalysisSnapshot struct {
	SurveyID       string                         `json:"surveyId" bson:"surveyId"`
	OrganizationID string                         `json:"organizationId" bson:"organizationId"`
	Analysis       *forces.OrganizationalAnalysis `json:"analysis" bson:"analysis"`
	GeneratedAt    time.Time                      `json:"generatedAt" bson:"generatedAt"`
}

// ForceShift is one force's movement between two analyses
type ForceShift struct {
	Force         forces.ForceKind `json:"force" bson:"force"`
	BaseAverage   float64          `json:"baseAverage" bson:"baseAverage"`
	TargetAverage float64          `json:"targetAverage" bson:"targetAverage"`
	Delta         float64          `json:"delta" bson:"delta"`
}

// AnalysisComparison puts two surveys' analyses side by side for the
// comparison tool (e.g. before/after an intervention)
type AnalysisComparison struct {
	BaseSurveyID    string       `json:"baseSurveyId" bson:"baseSurveyId"`
	TargetSurveyID  string       `json:"targetSurveyId" bson:"targetSurveyId"`
	BaseReadiness   int          `json:"baseReadiness" bson:"baseReadiness"`
	TargetReadiness int          `json:"targetReadiness" bson:"targetReadiness"`
	ReadinessDelta  int          `json:"readinessDelta" bson:"readinessDelta"`
	ForceShifts     []ForceShift `json:"forceShifts" bson:"forceShifts"`
}

// ScoringProgress reports how far a survey's batch has gotten through
// the external scorer
type ScoringProgress struct {
	SurveyID string `json:"surveyId"`
	Total    int    `json:"total"`
	Scored   int    `json:"scored"`
	Failed   int    `json:"failed"`
}

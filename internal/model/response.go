package model

import (
	"time"

	"readypulse/internal/forces"
)

// ResponseStatus tracks a response through the scoring pipeline
type ResponseStatus string

const (
	ResponseStatusPending ResponseStatus = "pending" // not yet sent to the scorer
	ResponseStatusScored  ResponseStatus = "scored"
	ResponseStatusFailed  ResponseStatus = "failed" // scorer gave up after retries
)

// SurveyResponse is one respondent's free-text answer plus, once the
// external scorer has run, its JTBD force score
type SurveyResponse struct {
	ID             string         `json:"id" bson:"_id,omitempty"`
	SurveyID       string         `json:"surveyId" bson:"surveyId"`
	OrganizationID string         `json:"organizationId" bson:"organizationId"`
	QuestionKey    string         `json:"questionKey" bson:"questionKey"`
	RespondentID   string         `json:"respondentId,omitempty" bson:"respondentId,omitempty"`
	Text           string         `json:"text" bson:"text"`
	Status         ResponseStatus `json:"status" bson:"status"`

	// Score is the scorer's output, present once Status is "scored"
	Score        *forces.RawScore `json:"score,omitempty" bson:"score,omitempty"`
	ScoringError string           `json:"scoringError,omitempty" bson:"scoringError,omitempty"`

	SubmittedAt time.Time  `json:"submittedAt" bson:"submittedAt"`
	ScoredAt    *time.Time `json:"scoredAt,omitempty" bson:"scoredAt,omitempty"`
}

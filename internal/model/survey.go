package model

import "time"

// SurveyStatus is the lifecycle state of a survey
type SurveyStatus string

const (
	SurveyStatusDraft  SurveyStatus = "draft"
	SurveyStatusOpen   SurveyStatus = "open"
	SurveyStatusClosed SurveyStatus = "closed"
)

// SurveyQuestion is one free-text question in a readiness survey
type SurveyQuestion struct {
	Key    string `json:"key" bson:"key"` // e.g. "Q1", "Q2"
	Prompt string `json:"prompt" bson:"prompt"`
}

// SurveySettings configures scoring behavior for one survey
type SurveySettings struct {
	// ScaleMax is the scorer's raw scale upper bound (default 5)
	ScaleMax float64 `json:"scaleMax,omitempty" bson:"scaleMax,omitempty"`

	// HighThreshold / LowThreshold for dominant/weak classification
	// on the canonical 0-10 scale (defaults 7 and 3)
	HighThreshold float64 `json:"highThreshold,omitempty" bson:"highThreshold,omitempty"`
	LowThreshold  float64 `json:"lowThreshold,omitempty" bson:"lowThreshold,omitempty"`
}

// Survey is an AI-readiness survey run for one organization
type Survey struct {
	ID             string           `json:"id" bson:"_id,omitempty"`
	OrganizationID string           `json:"organizationId" bson:"organizationId"`
	HostID         string           `json:"hostId" bson:"hostId"`
	Title          string           `json:"title" bson:"title"`
	Intent         string           `json:"intent,omitempty" bson:"intent,omitempty"` // what change is being assessed
	Status         SurveyStatus     `json:"status" bson:"status"`
	Settings       SurveySettings   `json:"settings" bson:"settings"`
	Questions      []SurveyQuestion `json:"questions" bson:"questions"`
	CreatedAt      time.Time        `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt" bson:"updatedAt"`
}

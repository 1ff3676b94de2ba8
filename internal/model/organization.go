package model

import "time"

// Organization is a customer organization running readiness surveys
type Organization struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Industry  string    `json:"industry,omitempty" bson:"industry,omitempty"`
	Size      string    `json:"size,omitempty" bson:"size,omitempty"` // e.g. "1-50", "51-200"
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

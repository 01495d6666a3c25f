package model

import "time"

// Annotation is a note attached to one period of a chart.
type Annotation struct {
	ID        string    `json:"id"`
	Period    string    `json:"period"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

package models

// Student is an identity record sourced from the external student registry.
// This service never persists or mutates these.
type Student struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	RollNo          string `json:"rollNo"`
	CurrentStandard string `json:"currentStandard"`
	CurrentClass    string `json:"currentClass"`
}

// Fallback identity values rendered when the directory has no matching record.
const (
	UnknownName     = "Unknown"
	UnknownRollNo   = "N/A"
	UnknownStandard = "N/A"
	UnknownClass    = "N/A"
)

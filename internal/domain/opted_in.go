package domain

import (
	"time"

	"github.com/google/uuid"
)

// OptedInEmail is a student address registered by an administrator.
// Email is always stored trimmed and lower-cased.
type OptedInEmail struct {
	ID        uuid.UUID
	Email     string
	CreatedAt time.Time
}

// OptedInUploadResult is returned for every opted-in list upload.
// Errors is never nil. Processed counts valid addresses in the file and
// Added counts the ones that were not already registered.
type OptedInUploadResult struct {
	Success   bool     `json:"success"`
	Processed int      `json:"processed"`
	Added     int      `json:"added"`
	Errors    []string `json:"errors"`
	Message   string   `json:"message,omitempty"`
}

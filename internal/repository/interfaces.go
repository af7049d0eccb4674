package repository

import (
	"cancerdetect/internal/model"
)

// DetectionRepository defines the interface for detection history operations.
type DetectionRepository interface {
	// Create operations
	Insert(det *model.Detection) (int64, error)

	// Read operations
	GetBySession(sessionID string, limit int) ([]model.Detection, error)
	GetRecent(limit int) ([]model.Detection, error)
	Count() (int, error)

	// Delete operations
	DeleteBySession(sessionID string) error
	DeleteAll() error
}

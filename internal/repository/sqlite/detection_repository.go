package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"cancerdetect/internal/model"
	"cancerdetect/internal/repository"
)

// DetectionRepository implements repository.DetectionRepository for SQLite.
type DetectionRepository struct {
	db *DB
}

// NewDetectionRepository creates a new SQLite detection repository.
func NewDetectionRepository(db *DB) *DetectionRepository {
	return &DetectionRepository{db: db}
}

// Insert adds a new detection record to the database.
func (r *DetectionRepository) Insert(det *model.Detection) (int64, error) {
	r.db.Lock()
	defer r.db.Unlock()

	if det.CreatedAt.IsZero() {
		det.CreatedAt = time.Now()
	}

	result, err := r.db.Conn().Exec(`
		INSERT INTO detections (session_id, plugin, image_name, outcome, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, det.SessionID, det.Plugin, det.ImageName, det.Outcome, det.Message, det.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert detection: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	det.ID = id
	return id, nil
}

// GetBySession returns the newest detections of a session, at most limit.
func (r *DetectionRepository) GetBySession(sessionID string, limit int) ([]model.Detection, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`
		SELECT id, session_id, plugin, image_name, outcome, message, created_at
		FROM detections WHERE session_id = ?
		ORDER BY created_at DESC, id DESC LIMIT ?
	`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query detections: %w", err)
	}
	defer rows.Close()

	return scanDetections(rows)
}

// GetRecent returns the newest detections across all sessions, at most limit.
func (r *DetectionRepository) GetRecent(limit int) ([]model.Detection, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`
		SELECT id, session_id, plugin, image_name, outcome, message, created_at
		FROM detections ORDER BY created_at DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query detections: %w", err)
	}
	defer rows.Close()

	return scanDetections(rows)
}

// Count returns the number of stored detections.
func (r *DetectionRepository) Count() (int, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var count int
	if err := r.db.Conn().QueryRow(`SELECT COUNT(*) FROM detections`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count detections: %w", err)
	}
	return count, nil
}

// DeleteBySession removes all detections of a session.
func (r *DetectionRepository) DeleteBySession(sessionID string) error {
	r.db.Lock()
	defer r.db.Unlock()

	if _, err := r.db.Conn().Exec(`DELETE FROM detections WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("failed to delete detections: %w", err)
	}
	return nil
}

// DeleteAll removes every detection.
func (r *DetectionRepository) DeleteAll() error {
	r.db.Lock()
	defer r.db.Unlock()

	if _, err := r.db.Conn().Exec(`DELETE FROM detections`); err != nil {
		return fmt.Errorf("failed to delete detections: %w", err)
	}
	return nil
}

func scanDetections(rows *sql.Rows) ([]model.Detection, error) {
	detections := []model.Detection{}
	for rows.Next() {
		var det model.Detection
		if err := rows.Scan(&det.ID, &det.SessionID, &det.Plugin, &det.ImageName, &det.Outcome, &det.Message, &det.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan detection: %w", err)
		}
		detections = append(detections, det)
	}
	return detections, rows.Err()
}

var _ repository.DetectionRepository = (*DetectionRepository)(nil)

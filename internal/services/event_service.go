package services

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/hande-app/logwatch/internal/models"
)

// EventServiceProvider defines the interface for event services.
type EventServiceProvider interface {
	CreateEvent(eventType, level, message string) error
	GetRecentEvents(limit int) ([]models.MonitorEvent, error)
	RecordExportRun(filename string, rows int, start, end time.Time, scheduled bool) error
}

// EventService records logwatch's own operational events: export runs,
// upstream failures, tail lifecycle.
type EventService struct {
	db *sql.DB
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB) *EventService {
	return &EventService{db: db}
}

// CreateEvent logs a new event to the database.
func (s *EventService) CreateEvent(eventType, level, message string) error {
	event := models.MonitorEvent{
		ID:      uuid.New().String(),
		Type:    eventType,
		Level:   level,
		Message: message,
	}

	stmt, err := s.db.Prepare("INSERT INTO monitor_events (id, type, level, message) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(event.ID, event.Type, event.Level, event.Message)
	return err
}

// GetRecentEvents retrieves the most recent events from the database.
func (s *EventService) GetRecentEvents(limit int) ([]models.MonitorEvent, error) {
	rows, err := s.db.Query("SELECT id, type, level, message, created_at FROM monitor_events ORDER BY created_at DESC, id LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.MonitorEvent
	for rows.Next() {
		var event models.MonitorEvent
		if err := rows.Scan(&event.ID, &event.Type, &event.Level, &event.Message, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// RecordExportRun stores the outcome of a completed export alongside an
// event entry.
func (s *EventService) RecordExportRun(filename string, rows int, start, end time.Time, scheduled bool) error {
	stmt, err := s.db.Prepare("INSERT INTO export_runs (id, filename, row_count, start_date, end_date, scheduled) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	flag := 0
	if scheduled {
		flag = 1
	}
	_, err = stmt.Exec(uuid.New().String(), filename, rows, start.Format("2006-01-02"), end.Format("2006-01-02"), flag)
	return err
}

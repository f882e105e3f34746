package persistent

import (
	"errors"
	"time"

	"openlove/pkg/models"

	"gorm.io/gorm"
)

type EventRepository interface {
	Create(event *models.Event) error
	GetByID(eventID string) (*models.Event, error)
	Delete(eventID string) error
	List(limit, offset int) ([]models.Event, error)
	CountCreatedInMonth(organizerID string, month time.Time) (int64, error)
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(event *models.Event) error {
	return r.db.Create(event).Error
}

func (r *eventRepository) GetByID(eventID string) (*models.Event, error) {
	var event models.Event
	err := r.db.Where("id = ?", eventID).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) Delete(eventID string) error {
	return r.db.Where("id = ?", eventID).Delete(&models.Event{}).Error
}

func (r *eventRepository) List(limit, offset int) ([]models.Event, error) {
	var events []models.Event
	err := r.db.Where("starts_at >= ?", time.Now()).
		Order("starts_at ASC").Limit(limit).Offset(offset).Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// CountCreatedInMonth counts events created in the calendar month the
// given time falls in; the monthly cap is per creation, not per start
// date.
func (r *eventRepository) CountCreatedInMonth(organizerID string, month time.Time) (int64, error) {
	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	end := start.AddDate(0, 1, 0)

	var count int64
	err := r.db.Model(&models.Event{}).
		Where("organizer_id = ? AND created_at >= ? AND created_at < ?", organizerID, start, end).
		Count(&count).Error
	return count, err
}

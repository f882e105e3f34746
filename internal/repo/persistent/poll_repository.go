package persistent

import (
	"errors"

	"openlove/pkg/models"

	"gorm.io/gorm"
)

type PollRepository interface {
	Create(poll *models.Poll) error
	GetByID(pollID string) (*models.Poll, error)
	GetVote(pollID, userID string) (*models.PollVote, error)
	// CastVote records or moves a user's vote inside one transaction,
	// keeping the per-option counters consistent with the vote rows.
	CastVote(pollID, userID string, optionIndex int) error
}

type pollRepository struct {
	db *gorm.DB
}

func NewPollRepository(db *gorm.DB) PollRepository {
	return &pollRepository{db: db}
}

func (r *pollRepository) Create(poll *models.Poll) error {
	return r.db.Create(poll).Error
}

func (r *pollRepository) GetByID(pollID string) (*models.Poll, error) {
	var poll models.Poll
	err := r.db.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("poll_options.position ASC")
	}).Where("id = ?", pollID).First(&poll).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &poll, nil
}

func (r *pollRepository) GetVote(pollID, userID string) (*models.PollVote, error) {
	var vote models.PollVote
	err := r.db.Where("poll_id = ? AND user_id = ?", pollID, userID).First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vote, nil
}

func (r *pollRepository) CastVote(pollID, userID string, optionIndex int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.PollVote
		err := tx.Where("poll_id = ? AND user_id = ?", pollID, userID).First(&existing).Error

		switch {
		case err == nil:
			if existing.OptionIndex == optionIndex {
				return nil
			}
			if err := tx.Model(&existing).Update("option_index", optionIndex).Error; err != nil {
				return err
			}
			if err := r.adjustOptionCount(tx, pollID, existing.OptionIndex, -1); err != nil {
				return err
			}
			return r.adjustOptionCount(tx, pollID, optionIndex, 1)

		case errors.Is(err, gorm.ErrRecordNotFound):
			vote := &models.PollVote{
				PollID:      pollID,
				UserID:      userID,
				OptionIndex: optionIndex,
			}
			if err := tx.Create(vote).Error; err != nil {
				return err
			}
			return r.adjustOptionCount(tx, pollID, optionIndex, 1)

		default:
			return err
		}
	})
}

func (r *pollRepository) adjustOptionCount(tx *gorm.DB, pollID string, optionIndex, delta int) error {
	return tx.Model(&models.PollOption{}).
		Where("poll_id = ? AND position = ?", pollID, optionIndex).
		UpdateColumn("votes_count", gorm.Expr("GREATEST(votes_count + ?, 0)", delta)).Error
}

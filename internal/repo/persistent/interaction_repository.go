package persistent

import (
	"errors"

	"openlove/pkg/models"

	"gorm.io/gorm"
)

type InteractionRepository interface {
	GetLike(userID, targetID string, targetType models.TargetType) (*models.Like, error)
	CreateLike(userID, targetID string, targetType models.TargetType, reaction models.Reaction) error
	UpdateReaction(likeID string, reaction models.Reaction) error
	DeleteLike(userID, targetID string, targetType models.TargetType) error
	CountLikes(targetID string, targetType models.TargetType) (int64, error)
	IncrementViews(postID string) error
	GetViewCount(postID string) (int64, error)
}

type interactionRepository struct {
	db *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

func (r *interactionRepository) GetLike(userID, targetID string, targetType models.TargetType) (*models.Like, error) {
	var like models.Like
	err := r.db.Where("user_id = ? AND target_id = ? AND target_type = ?", userID, targetID, targetType).First(&like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &like, nil
}

func (r *interactionRepository) CreateLike(userID, targetID string, targetType models.TargetType, reaction models.Reaction) error {
	// A previously toggled-off like leaves a soft-deleted row behind;
	// revive it instead of violating the unique pair index.
	var existing models.Like
	err := r.db.Unscoped().Where("user_id = ? AND target_id = ? AND target_type = ?", userID, targetID, targetType).First(&existing).Error
	if err == nil {
		return r.db.Unscoped().Model(&existing).Updates(map[string]interface{}{
			"deleted_at": nil,
			"reaction":   reaction,
		}).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return r.db.Create(&models.Like{
		UserID:     userID,
		TargetID:   targetID,
		TargetType: targetType,
		Reaction:   reaction,
	}).Error
}

func (r *interactionRepository) UpdateReaction(likeID string, reaction models.Reaction) error {
	return r.db.Model(&models.Like{}).Where("id = ?", likeID).Update("reaction", reaction).Error
}

func (r *interactionRepository) DeleteLike(userID, targetID string, targetType models.TargetType) error {
	return r.db.Where("user_id = ? AND target_id = ? AND target_type = ?", userID, targetID, targetType).Delete(&models.Like{}).Error
}

func (r *interactionRepository) CountLikes(targetID string, targetType models.TargetType) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("target_id = ? AND target_type = ?", targetID, targetType).Count(&count).Error
	return count, err
}

func (r *interactionRepository) IncrementViews(postID string) error {
	return r.db.Model(&models.Post{}).Where("id = ?", postID).
		UpdateColumn("views_count", gorm.Expr("views_count + ?", 1)).Error
}

func (r *interactionRepository) GetViewCount(postID string) (int64, error) {
	var views int64
	err := r.db.Model(&models.Post{}).Select("views_count").Where("id = ?", postID).Scan(&views).Error
	return views, err
}

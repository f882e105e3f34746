package persistent

import (
	"errors"

	"openlove/pkg/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(commentID string) (*models.Comment, error)
	ListByPost(postID string, limit, offset int) ([]models.Comment, error)
	Delete(commentID string) error
	AddLikes(commentID string, delta int) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *commentRepository) GetByID(commentID string) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Where("id = ?", commentID).First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByPost(postID string, limit, offset int) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Limit(limit).Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) Delete(commentID string) error {
	return r.db.Where("id = ?", commentID).Delete(&models.Comment{}).Error
}

func (r *commentRepository) AddLikes(commentID string, delta int) error {
	return r.db.Model(&models.Comment{}).Where("id = ?", commentID).
		UpdateColumn("likes_count", gorm.Expr("GREATEST(likes_count + ?, 0)", delta)).Error
}

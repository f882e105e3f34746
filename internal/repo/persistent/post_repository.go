package persistent

import (
	"errors"

	"openlove/pkg/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostRepository interface {
	Create(post *models.Post) error
	GetByID(postID string) (*models.Post, error)
	PostExists(postID string) (bool, error)
	GetAuthorID(postID string) (string, error)
	Delete(postID string) error
	AddLikes(postID string, delta int) error
	AddComments(postID string, delta int) error
	AddShares(postID string, delta int) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *postRepository) GetByID(postID string) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("Media").Where("id = ?", postID).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) PostExists(postID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error
	return count > 0, err
}

func (r *postRepository) GetAuthorID(postID string) (string, error) {
	var authorID string
	err := r.db.Model(&models.Post{}).Select("author_id").Where("id = ?", postID).Scan(&authorID).Error
	return authorID, err
}

func (r *postRepository) Delete(postID string) error {
	return r.db.Where("id = ?", postID).Delete(&models.Post{}).Error
}

// Counter updates go through single atomic UPDATE expressions so that
// concurrent writers cannot lose increments.
func (r *postRepository) AddLikes(postID string, delta int) error {
	return r.addCounter(postID, "likes_count", delta)
}

func (r *postRepository) AddComments(postID string, delta int) error {
	return r.addCounter(postID, "comments_count", delta)
}

func (r *postRepository) AddShares(postID string, delta int) error {
	return r.addCounter(postID, "shares_count", delta)
}

func (r *postRepository) addCounter(postID, column string, delta int) error {
	return r.db.Model(&models.Post{}).Where("id = ?", postID).
		UpdateColumn(column, clause.Expr{SQL: "GREATEST(" + column + " + ?, 0)", Vars: []interface{}{delta}}).Error
}

package persistent

import (
	"errors"

	"openlove/pkg/models"

	"gorm.io/gorm"
)

type FollowRepository interface {
	Follow(followerID, followedID string) error
	Unfollow(followerID, followedID string) error
	IsFollowing(followerID, followedID string) (bool, error)
	GetFollowedIDs(followerID string) ([]string, error)
	GetFollowerIDs(followedID string) ([]string, error)
	CountFollowed(followerID string) (int64, error)
	ListFollowers(followedID string, limit, offset int) ([]models.User, error)
	ListFollowing(followerID string, limit, offset int) ([]models.User, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Follow(followerID, followedID string) error {
	var existing models.Follow
	err := r.db.Unscoped().Where("follower_id = ? AND followed_id = ?", followerID, followedID).First(&existing).Error
	if err == nil {
		if existing.DeletedAt.Valid {
			return r.db.Unscoped().Model(&existing).Update("deleted_at", nil).Error
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return r.db.Create(&models.Follow{
		FollowerID: followerID,
		FollowedID: followedID,
	}).Error
}

func (r *followRepository) Unfollow(followerID, followedID string) error {
	return r.db.Where("follower_id = ? AND followed_id = ?", followerID, followedID).Delete(&models.Follow{}).Error
}

func (r *followRepository) IsFollowing(followerID, followedID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("follower_id = ? AND followed_id = ?", followerID, followedID).Count(&count).Error
	return count > 0, err
}

func (r *followRepository) GetFollowedIDs(followerID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", followerID).Pluck("followed_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *followRepository) GetFollowerIDs(followedID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.Follow{}).Where("followed_id = ?", followedID).Pluck("follower_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *followRepository) CountFollowed(followerID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", followerID).Count(&count).Error
	return count, err
}

func (r *followRepository) ListFollowers(followedID string, limit, offset int) ([]models.User, error) {
	var users []models.User
	err := r.db.Model(&models.User{}).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followed_id = ? AND follows.deleted_at IS NULL", followedID).
		Order("follows.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *followRepository) ListFollowing(followerID string, limit, offset int) ([]models.User, error) {
	var users []models.User
	err := r.db.Model(&models.User{}).
		Joins("JOIN follows ON follows.followed_id = users.id").
		Where("follows.follower_id = ? AND follows.deleted_at IS NULL", followerID).
		Order("follows.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

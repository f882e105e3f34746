package persistent

import (
	"errors"

	"openlove/pkg/models"

	"gorm.io/gorm"
)

type CommunityRepository interface {
	Create(community *models.Community) error
	GetByID(communityID string) (*models.Community, error)
	Update(communityID string, updates map[string]interface{}) error
	Delete(communityID string) error
	List(limit, offset int) ([]models.Community, error)
	CountOwned(ownerID string) (int64, error)
	Join(communityID, userID string) error
	Leave(communityID, userID string) error
	IsMember(communityID, userID string) (bool, error)
}

type communityRepository struct {
	db *gorm.DB
}

func NewCommunityRepository(db *gorm.DB) CommunityRepository {
	return &communityRepository{db: db}
}

func (r *communityRepository) Create(community *models.Community) error {
	return r.db.Create(community).Error
}

func (r *communityRepository) GetByID(communityID string) (*models.Community, error) {
	var community models.Community
	err := r.db.Where("id = ?", communityID).First(&community).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &community, nil
}

func (r *communityRepository) Update(communityID string, updates map[string]interface{}) error {
	return r.db.Model(&models.Community{}).Where("id = ?", communityID).Updates(updates).Error
}

func (r *communityRepository) Delete(communityID string) error {
	if err := r.db.Where("community_id = ?", communityID).Delete(&models.CommunityMember{}).Error; err != nil {
		return err
	}
	return r.db.Where("id = ?", communityID).Delete(&models.Community{}).Error
}

func (r *communityRepository) List(limit, offset int) ([]models.Community, error) {
	var communities []models.Community
	err := r.db.Order("members_count DESC, created_at DESC").Limit(limit).Offset(offset).Find(&communities).Error
	if err != nil {
		return nil, err
	}
	return communities, nil
}

func (r *communityRepository) CountOwned(ownerID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Community{}).Where("owner_id = ?", ownerID).Count(&count).Error
	return count, err
}

func (r *communityRepository) Join(communityID, userID string) error {
	var existing models.CommunityMember
	err := r.db.Unscoped().Where("community_id = ? AND user_id = ?", communityID, userID).First(&existing).Error
	if err == nil {
		if !existing.DeletedAt.Valid {
			return nil
		}
		if err := r.db.Unscoped().Model(&existing).Update("deleted_at", nil).Error; err != nil {
			return err
		}
		return r.adjustMembers(communityID, 1)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := r.db.Create(&models.CommunityMember{
		CommunityID: communityID,
		UserID:      userID,
	}).Error; err != nil {
		return err
	}
	return r.adjustMembers(communityID, 1)
}

func (r *communityRepository) Leave(communityID, userID string) error {
	result := r.db.Where("community_id = ? AND user_id = ?", communityID, userID).Delete(&models.CommunityMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return nil
	}
	return r.adjustMembers(communityID, -1)
}

func (r *communityRepository) IsMember(communityID, userID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.CommunityMember{}).Where("community_id = ? AND user_id = ?", communityID, userID).Count(&count).Error
	return count > 0, err
}

func (r *communityRepository) adjustMembers(communityID string, delta int) error {
	return r.db.Model(&models.Community{}).Where("id = ?", communityID).
		UpdateColumn("members_count", gorm.Expr("GREATEST(members_count + ?, 0)", delta)).Error
}

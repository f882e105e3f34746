package persistent

import (
	"openlove/pkg/models"

	"gorm.io/gorm"
)

// FeedRepository groups the independent relation fetchers the feed
// assembler joins. Every method returns an empty slice for "nothing
// found"; only transport failures surface as errors.
type FeedRepository interface {
	GetTimelinePage(authorIDs []string, includePremium bool, limit, offset int) ([]models.Post, error)
	GetPublicPage(viewerID string, includePremium bool, limit, offset int) ([]models.Post, error)
	GetAuthorsByIDs(authorIDs []string) ([]models.User, error)
	GetViewerReactions(viewerID string, postIDs []string) ([]models.Like, error)
	GetRecentCommentsByPostIDs(postIDs []string, perPost int) ([]models.Comment, error)
}

type feedRepository struct {
	db *gorm.DB
}

func NewFeedRepository(db *gorm.DB) FeedRepository {
	return &feedRepository{db: db}
}

// GetTimelinePage returns posts restricted to the given author set.
// Free-tier timelines pass the viewer's followed ids (plus the viewer)
// here, so visibility filtering happens in the query rather than
// post-hoc on the assembled page. Ordering is newest first with the id
// as a deterministic tie-break.
func (r *feedRepository) GetTimelinePage(authorIDs []string, includePremium bool, limit, offset int) ([]models.Post, error) {
	if len(authorIDs) == 0 {
		return []models.Post{}, nil
	}

	query := r.db.Preload("Media").
		Where("author_id IN ?", authorIDs).
		Where("visibility IN ?", []models.PostVisibility{models.VisibilityPublic, models.VisibilityFriends})
	if !includePremium {
		query = query.Where("is_premium = ?", false)
	}

	var posts []models.Post
	err := query.Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPublicPage returns the unrestricted public set plus the viewer's
// own posts, for premium viewers.
func (r *feedRepository) GetPublicPage(viewerID string, includePremium bool, limit, offset int) ([]models.Post, error) {
	query := r.db.Preload("Media").
		Where("visibility = ? OR author_id = ?", models.VisibilityPublic, viewerID)
	if !includePremium {
		query = query.Where("is_premium = ?", false)
	}

	var posts []models.Post
	err := query.Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *feedRepository) GetAuthorsByIDs(authorIDs []string) ([]models.User, error) {
	if len(authorIDs) == 0 {
		return []models.User{}, nil
	}

	var authors []models.User
	err := r.db.Where("id IN ?", authorIDs).Find(&authors).Error
	if err != nil {
		return nil, err
	}
	return authors, nil
}

func (r *feedRepository) GetViewerReactions(viewerID string, postIDs []string) ([]models.Like, error) {
	if viewerID == "" || len(postIDs) == 0 {
		return []models.Like{}, nil
	}

	var likes []models.Like
	err := r.db.Where("user_id = ? AND target_id IN ? AND target_type = ?", viewerID, postIDs, models.TargetPost).Find(&likes).Error
	if err != nil {
		return nil, err
	}
	return likes, nil
}

// GetRecentCommentsByPostIDs returns up to perPost newest comments for
// each post, so one busy thread cannot starve the rest of the page.
func (r *feedRepository) GetRecentCommentsByPostIDs(postIDs []string, perPost int) ([]models.Comment, error) {
	if len(postIDs) == 0 {
		return []models.Comment{}, nil
	}

	ranked := r.db.Model(&models.Comment{}).
		Select("comments.*, ROW_NUMBER() OVER (PARTITION BY post_id ORDER BY created_at DESC, id DESC) AS rank_in_post").
		Where("post_id IN ?", postIDs)

	var comments []models.Comment
	err := r.db.Table("(?) AS ranked", ranked).
		Where("rank_in_post <= ?", perPost).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

package usecase

import (
	"openlove/internal/entity"
	"openlove/pkg/models"
	"openlove/pkg/plan"
	"time"
)

// recentCommentsPerItem caps how many comments ride along inside each
// assembled feed item; the rest are fetched through the comment
// endpoints.
const recentCommentsPerItem = 3

// The indexing helpers below turn each fetched relation into a keyed
// lookup so assembly joins in O(1) per post. Ids cannot repeat within a
// fetch (they are the fetch key), so last-write-wins is fine.

func indexAuthors(authors []models.User) map[string]models.User {
	index := make(map[string]models.User, len(authors))
	for _, author := range authors {
		index[author.ID] = author
	}
	return index
}

func indexReactions(likes []models.Like) map[string]models.Like {
	index := make(map[string]models.Like, len(likes))
	for _, like := range likes {
		index[like.TargetID] = like
	}
	return index
}

func groupCommentsByPost(comments []models.Comment) map[string][]models.Comment {
	grouped := make(map[string][]models.Comment)
	for _, comment := range comments {
		grouped[comment.PostID] = append(grouped[comment.PostID], comment)
	}
	return grouped
}

// placeholderAuthor stands in when a post references an author row that
// no longer resolves (deleted account, inconsistent row). The post is
// kept rather than dropped.
func placeholderAuthor(authorID string) entity.FeedAuthor {
	return entity.FeedAuthor{
		ID:          authorID,
		Username:    "unknown",
		DisplayName: "Unknown User",
	}
}

func toFeedAuthor(user models.User, now time.Time) entity.FeedAuthor {
	tier := plan.Resolve(user.PlanTier, user.PremiumExpiresAt, now)
	displayName := user.DisplayName
	if displayName == "" {
		displayName = user.Username
	}
	return entity.FeedAuthor{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: displayName,
		AvatarURL:   user.AvatarURL,
		IsVerified:  user.IsVerified,
		IsPremium:   plan.IsPremium(tier),
	}
}

// assembleFeedItems joins a page of posts with the author, reaction and
// comment lookups into denormalized feed items, preserving the posts'
// order.
func assembleFeedItems(
	posts []models.Post,
	authors map[string]models.User,
	reactions map[string]models.Like,
	commentsByPost map[string][]models.Comment,
	now time.Time,
) []entity.FeedItem {
	items := make([]entity.FeedItem, 0, len(posts))

	for _, post := range posts {
		item := entity.FeedItem{
			ID:            post.ID,
			Content:       post.Content,
			Visibility:    string(post.Visibility),
			IsPremium:     post.IsPremium,
			RepostOfID:    post.RepostOfID,
			LikesCount:    post.LikesCount,
			CommentsCount: post.CommentsCount,
			SharesCount:   post.SharesCount,
			CreatedAt:     post.CreatedAt,
			Media:         make([]entity.FeedMedia, 0, len(post.Media)),
		}

		for _, media := range post.Media {
			item.Media = append(item.Media, entity.FeedMedia{
				ID:           media.ID,
				MediaURL:     media.MediaURL,
				ThumbnailURL: media.ThumbnailURL,
				Position:     media.Position,
			})
		}

		if author, ok := authors[post.AuthorID]; ok {
			item.Author = toFeedAuthor(author, now)
		} else {
			item.Author = placeholderAuthor(post.AuthorID)
		}

		if like, ok := reactions[post.ID]; ok {
			item.ViewerLiked = true
			item.ViewerReaction = string(like.Reaction)
		}

		for i, comment := range commentsByPost[post.ID] {
			if i >= recentCommentsPerItem {
				break
			}
			feedComment := entity.FeedComment{
				ID:         comment.ID,
				Content:    comment.Content,
				ParentID:   comment.ParentID,
				LikesCount: comment.LikesCount,
				CreatedAt:  comment.CreatedAt,
			}
			if author, ok := authors[comment.AuthorID]; ok {
				feedComment.Author = toFeedAuthor(author, now)
			} else {
				feedComment.Author = placeholderAuthor(comment.AuthorID)
			}
			item.Comments = append(item.Comments, feedComment)
		}

		items = append(items, item)
	}

	return items
}

// collectAuthorIDs gathers the distinct author ids referenced by a page
// of posts and their attached comments, for one batched author fetch.
func collectAuthorIDs(posts []models.Post, comments []models.Comment) []string {
	seen := make(map[string]bool)
	ids := make([]string, 0, len(posts))

	for _, post := range posts {
		if !seen[post.AuthorID] {
			seen[post.AuthorID] = true
			ids = append(ids, post.AuthorID)
		}
	}
	for _, comment := range comments {
		if !seen[comment.AuthorID] {
			seen[comment.AuthorID] = true
			ids = append(ids, comment.AuthorID)
		}
	}

	return ids
}

func collectPostIDs(posts []models.Post) []string {
	ids := make([]string, 0, len(posts))
	for _, post := range posts {
		ids = append(ids, post.ID)
	}
	return ids
}

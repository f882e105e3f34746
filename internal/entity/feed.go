package entity

import "time"

// FeedAuthor is the resolved author sub-object embedded in a feed item.
type FeedAuthor struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
	IsVerified  bool   `json:"is_verified"`
	IsPremium   bool   `json:"is_premium"`
}

type FeedMedia struct {
	ID           string `json:"id"`
	MediaURL     string `json:"media_url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Position     int    `json:"position"`
}

type FeedComment struct {
	ID         string     `json:"id"`
	Content    string     `json:"content"`
	Author     FeedAuthor `json:"author"`
	ParentID   *string    `json:"parent_id,omitempty"`
	LikesCount int        `json:"likes_count"`
	CreatedAt  time.Time  `json:"created_at"`
}

// FeedItem is the denormalized, client-ready representation of a post
// merged with its author, like, and comment summaries.
type FeedItem struct {
	ID             string        `json:"id"`
	Content        string        `json:"content"`
	Media          []FeedMedia   `json:"media"`
	Visibility     string        `json:"visibility"`
	IsPremium      bool          `json:"is_premium"`
	RepostOfID     *string       `json:"repost_of_id,omitempty"`
	Author         FeedAuthor    `json:"author"`
	LikesCount     int           `json:"likes_count"`
	ViewerLiked    bool          `json:"viewer_liked"`
	ViewerReaction string        `json:"viewer_reaction,omitempty"`
	CommentsCount  int           `json:"comments_count"`
	Comments       []FeedComment `json:"comments,omitempty"`
	SharesCount    int           `json:"shares_count"`
	CreatedAt      time.Time     `json:"created_at"`
}

// FeedDebug carries internal assembly counts. It is only emitted when
// debugging is enabled both server-side and per request.
type FeedDebug struct {
	FollowCount  int `json:"follow_count"`
	PostsFound   int `json:"posts_found"`
	AuthorsFound int `json:"authors_found"`
}

type FeedResponse struct {
	Data      []FeedItem `json:"data"`
	HasMore   bool       `json:"hasMore"`
	IsPremium bool       `json:"isPremium"`
	Page      int        `json:"page"`
	Limit     int        `json:"limit"`
	Message   string     `json:"message,omitempty"`
	Debug     *FeedDebug `json:"debug,omitempty"`
}

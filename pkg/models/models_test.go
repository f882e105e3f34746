package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_BeforeCreate(t *testing.T) {
	user := &User{
		Email:    "test@example.com",
		Username: "testuser",
		Password: "password",
		Role:     RoleUser,
		IsActive: true,
	}

	// BeforeCreate should set ID if empty
	err := user.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)
}

func TestUser_BeforeCreate_WithID(t *testing.T) {
	existingID := "existing-id-123"
	user := &User{
		ID:       existingID,
		Email:    "test@example.com",
		Username: "testuser",
		Password: "password",
	}

	err := user.BeforeCreate(nil)
	assert.NoError(t, err)
	// ID should remain unchanged if already set
	assert.Equal(t, existingID, user.ID)
}

func TestPost_BeforeCreate(t *testing.T) {
	post := &Post{
		AuthorID:   "author-123",
		Content:    "hello world",
		Visibility: VisibilityPublic,
	}

	err := post.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, post.ID)
}

func TestPost_BeforeCreate_WithID(t *testing.T) {
	existingID := "existing-post-id"
	post := &Post{
		ID:       existingID,
		AuthorID: "author-123",
		Content:  "hello world",
	}

	err := post.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.Equal(t, existingID, post.ID)
}

func TestLike_BeforeCreate(t *testing.T) {
	like := &Like{
		UserID:     "user-123",
		TargetID:   "post-123",
		TargetType: TargetPost,
		Reaction:   ReactionLove,
	}

	err := like.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, like.ID)
}

func TestComment_BeforeCreate(t *testing.T) {
	comment := &Comment{
		PostID:   "post-123",
		AuthorID: "user-123",
		Content:  "nice",
	}

	err := comment.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, comment.ID)
}

func TestFollow_BeforeCreate(t *testing.T) {
	follow := &Follow{
		FollowerID: "user-1",
		FollowedID: "user-2",
	}

	err := follow.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, follow.ID)
}

func TestPollVote_BeforeCreate(t *testing.T) {
	vote := &PollVote{
		PollID:      "poll-123",
		UserID:      "user-123",
		OptionIndex: 1,
	}

	err := vote.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, vote.ID)
}

func TestSubscription_BeforeCreate(t *testing.T) {
	sub := &Subscription{
		UserID:   "user-123",
		Tier:     "gold",
		Provider: ProviderStripe,
	}

	err := sub.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, sub.ID)
}

func TestValidReaction(t *testing.T) {
	assert.True(t, ValidReaction(ReactionLike))
	assert.True(t, ValidReaction(ReactionAngry))
	assert.False(t, ValidReaction(Reaction("meh")))
}

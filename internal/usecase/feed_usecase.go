package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"openlove/internal/entity"
	"openlove/internal/repo/persistent"
	"openlove/pkg/logger"
	"openlove/pkg/models"
	"openlove/pkg/pagination"
	"openlove/pkg/plan"

	"github.com/redis/go-redis/v9"
)

const (
	feedCacheTTL = 30 * time.Second

	emptyTimelineMessage = "Follow people to see their posts in your timeline"
)

type FeedUseCase interface {
	GetTimeline(viewerID string, p pagination.Params, debug bool) (*entity.FeedResponse, error)
	GetFollowingFeed(viewerID string, p pagination.Params, debug bool) (*entity.FeedResponse, error)
}

type feedUseCase struct {
	feedRepo    persistent.FeedRepository
	userRepo    persistent.UserRepository
	followRepo  persistent.FollowRepository
	redisClient *redis.Client
	logger      *logger.Logger
	debugFlag   bool
}

func NewFeedUseCase(
	feedRepo persistent.FeedRepository,
	userRepo persistent.UserRepository,
	followRepo persistent.FollowRepository,
	redisClient *redis.Client,
	logger *logger.Logger,
	debugFlag bool,
) FeedUseCase {
	return &feedUseCase{
		feedRepo:    feedRepo,
		userRepo:    userRepo,
		followRepo:  followRepo,
		redisClient: redisClient,
		logger:      logger,
		debugFlag:   debugFlag,
	}
}

// GetTimeline assembles the viewer's main feed page. Premium viewers
// get the full public set; free viewers are restricted up front to the
// authors they follow plus themselves, so visibility is enforced by the
// query instead of post-hoc filtering.
func (uc *feedUseCase) GetTimeline(viewerID string, p pagination.Params, debug bool) (*entity.FeedResponse, error) {
	debug = debug && uc.debugFlag

	cacheKey := fmt.Sprintf("timeline:%s:page:%d:limit:%d", viewerID, p.Page, p.Limit)
	if !debug {
		if cached := uc.getCachedResponse(cacheKey); cached != nil {
			return cached, nil
		}
	}

	viewer, err := uc.userRepo.GetByID(viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve viewer: %w", err)
	}
	if viewer == nil {
		return nil, fmt.Errorf("viewer not found")
	}

	tier := plan.Resolve(viewer.PlanTier, viewer.PremiumExpiresAt, time.Now())
	caps := plan.ForTier(tier)

	response := &entity.FeedResponse{
		Data:      []entity.FeedItem{},
		IsPremium: plan.IsPremium(tier),
		Page:      p.Page,
		Limit:     p.Limit,
	}

	var posts []models.Post
	followCount := 0

	if plan.IsPremium(tier) {
		posts, err = uc.feedRepo.GetPublicPage(viewerID, caps.CanSeePremiumContent, p.Limit, p.Offset())
		if err != nil {
			uc.logger.Error("Failed to fetch timeline posts: %v", err)
			return nil, fmt.Errorf("failed to fetch timeline: %w", err)
		}
	} else {
		followedIDs, err := uc.followRepo.GetFollowedIDs(viewerID)
		if err != nil {
			uc.logger.Error("Failed to resolve followed authors: %v", err)
			return nil, fmt.Errorf("failed to resolve follows: %w", err)
		}
		followCount = len(followedIDs)

		if followCount == 0 {
			// Not an error: the free tier just has nothing to show yet.
			response.Message = emptyTimelineMessage
			uc.setCachedResponse(cacheKey, response)
			return response, nil
		}

		authorIDs := append(followedIDs, viewerID)
		posts, err = uc.feedRepo.GetTimelinePage(authorIDs, caps.CanSeePremiumContent, p.Limit, p.Offset())
		if err != nil {
			uc.logger.Error("Failed to fetch timeline posts: %v", err)
			return nil, fmt.Errorf("failed to fetch timeline: %w", err)
		}
	}

	items, dbg, err := uc.assemble(viewerID, posts)
	if err != nil {
		return nil, err
	}
	response.Data = items
	response.HasMore = p.HasMore(len(items))
	if debug {
		dbg.FollowCount = followCount
		response.Debug = dbg
	}

	if !debug {
		uc.setCachedResponse(cacheKey, response)
	}
	return response, nil
}

// GetFollowingFeed is the timeline restricted to followed authors only,
// for every tier.
func (uc *feedUseCase) GetFollowingFeed(viewerID string, p pagination.Params, debug bool) (*entity.FeedResponse, error) {
	debug = debug && uc.debugFlag

	cacheKey := fmt.Sprintf("following:%s:page:%d:limit:%d", viewerID, p.Page, p.Limit)
	if !debug {
		if cached := uc.getCachedResponse(cacheKey); cached != nil {
			return cached, nil
		}
	}

	viewer, err := uc.userRepo.GetByID(viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve viewer: %w", err)
	}
	if viewer == nil {
		return nil, fmt.Errorf("viewer not found")
	}

	tier := plan.Resolve(viewer.PlanTier, viewer.PremiumExpiresAt, time.Now())
	caps := plan.ForTier(tier)

	response := &entity.FeedResponse{
		Data:      []entity.FeedItem{},
		IsPremium: plan.IsPremium(tier),
		Page:      p.Page,
		Limit:     p.Limit,
	}

	followedIDs, err := uc.followRepo.GetFollowedIDs(viewerID)
	if err != nil {
		uc.logger.Error("Failed to resolve followed authors: %v", err)
		return nil, fmt.Errorf("failed to resolve follows: %w", err)
	}

	if len(followedIDs) == 0 {
		response.Message = emptyTimelineMessage
		uc.setCachedResponse(cacheKey, response)
		return response, nil
	}

	posts, err := uc.feedRepo.GetTimelinePage(followedIDs, caps.CanSeePremiumContent, p.Limit, p.Offset())
	if err != nil {
		uc.logger.Error("Failed to fetch following feed: %v", err)
		return nil, fmt.Errorf("failed to fetch following feed: %w", err)
	}

	items, dbg, err := uc.assemble(viewerID, posts)
	if err != nil {
		return nil, err
	}
	response.Data = items
	response.HasMore = p.HasMore(len(items))
	if debug {
		dbg.FollowCount = len(followedIDs)
		response.Debug = dbg
	}

	if !debug {
		uc.setCachedResponse(cacheKey, response)
	}
	return response, nil
}

// assemble runs the remaining relation fetchers for a page of posts,
// indexes the results, and joins everything into feed items.
func (uc *feedUseCase) assemble(viewerID string, posts []models.Post) ([]entity.FeedItem, *entity.FeedDebug, error) {
	if len(posts) == 0 {
		return []entity.FeedItem{}, &entity.FeedDebug{}, nil
	}

	postIDs := collectPostIDs(posts)

	comments, err := uc.feedRepo.GetRecentCommentsByPostIDs(postIDs, recentCommentsPerItem)
	if err != nil {
		uc.logger.Error("Failed to fetch comments for feed page: %v", err)
		return nil, nil, fmt.Errorf("failed to fetch comments: %w", err)
	}

	authors, err := uc.feedRepo.GetAuthorsByIDs(collectAuthorIDs(posts, comments))
	if err != nil {
		uc.logger.Error("Failed to fetch authors for feed page: %v", err)
		return nil, nil, fmt.Errorf("failed to fetch authors: %w", err)
	}

	reactions, err := uc.feedRepo.GetViewerReactions(viewerID, postIDs)
	if err != nil {
		// The viewer's own reactions are decoration; the page still
		// renders without them.
		uc.logger.Warn("Failed to fetch viewer reactions: %v", err)
		reactions = nil
	}

	items := assembleFeedItems(
		posts,
		indexAuthors(authors),
		indexReactions(reactions),
		groupCommentsByPost(comments),
		time.Now(),
	)

	return items, &entity.FeedDebug{
		PostsFound:   len(posts),
		AuthorsFound: len(authors),
	}, nil
}

func (uc *feedUseCase) getCachedResponse(key string) *entity.FeedResponse {
	cached, err := uc.redisClient.Get(context.Background(), key).Result()
	if err != nil {
		// A cache failure is indistinguishable from a miss; recompute.
		return nil
	}

	var response entity.FeedResponse
	if err := json.Unmarshal([]byte(cached), &response); err != nil {
		return nil
	}
	return &response
}

func (uc *feedUseCase) setCachedResponse(key string, response *entity.FeedResponse) {
	payload, err := json.Marshal(response)
	if err != nil {
		return
	}
	if err := uc.redisClient.Set(context.Background(), key, payload, feedCacheTTL).Err(); err != nil {
		uc.logger.Warn("Failed to cache feed page: %v", err)
	}
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"openlove/internal/entity"
	"openlove/internal/usecase"
	"openlove/pkg/logger"
	"openlove/pkg/pagination"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockFeedUseCase is a mock implementation of FeedUseCase
type MockFeedUseCase struct {
	mock.Mock
}

func (m *MockFeedUseCase) GetTimeline(viewerID string, p pagination.Params, debug bool) (*entity.FeedResponse, error) {
	args := m.Called(viewerID, p, debug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.FeedResponse), args.Error(1)
}

func (m *MockFeedUseCase) GetFollowingFeed(viewerID string, p pagination.Params, debug bool) (*entity.FeedResponse, error) {
	args := m.Called(viewerID, p, debug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.FeedResponse), args.Error(1)
}

var _ usecase.FeedUseCase = (*MockFeedUseCase)(nil)

func TestGetTimeline_EmptyForNewFreeUser(t *testing.T) {
	mockUseCase := new(MockFeedUseCase)
	logger := logger.New()
	handler := NewFeedHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.GET("/feed/timeline", func(c *gin.Context) {
		c.Set("user_id", "user-new")
		handler.GetTimeline(c)
	})

	params := pagination.Params{Page: 1, Limit: 20}
	mockUseCase.On("GetTimeline", "user-new", params, false).Return(&entity.FeedResponse{
		Data:      []entity.FeedItem{},
		HasMore:   false,
		IsPremium: false,
		Page:      1,
		Limit:     20,
		Message:   "Follow people to see their posts in your timeline",
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/feed/timeline", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, 0, len(response["data"].([]interface{})))
	assert.Equal(t, false, response["hasMore"])
	assert.Equal(t, "Follow people to see their posts in your timeline", response["message"])

	mockUseCase.AssertExpectations(t)
}

func TestGetTimeline_PremiumHasMore(t *testing.T) {
	mockUseCase := new(MockFeedUseCase)
	logger := logger.New()
	handler := NewFeedHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.GET("/feed/timeline", func(c *gin.Context) {
		c.Set("user_id", "user-gold")
		handler.GetTimeline(c)
	})

	items := make([]entity.FeedItem, 20)
	params := pagination.Params{Page: 1, Limit: 20}
	mockUseCase.On("GetTimeline", "user-gold", params, false).Return(&entity.FeedResponse{
		Data:      items,
		HasMore:   true,
		IsPremium: true,
		Page:      1,
		Limit:     20,
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/feed/timeline", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, true, response["hasMore"])
	assert.Equal(t, true, response["isPremium"])
	assert.Equal(t, 20, len(response["data"].([]interface{})))

	mockUseCase.AssertExpectations(t)
}

func TestGetTimeline_ViewerNotFound(t *testing.T) {
	mockUseCase := new(MockFeedUseCase)
	logger := logger.New()
	handler := NewFeedHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.GET("/feed/timeline", handler.GetTimeline)

	params := pagination.Params{Page: 1, Limit: 20}
	mockUseCase.On("GetTimeline", "", params, false).Return(nil, errors.New("viewer not found"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/feed/timeline", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestGetTimeline_PaginationParams(t *testing.T) {
	mockUseCase := new(MockFeedUseCase)
	logger := logger.New()
	handler := NewFeedHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.GET("/feed/timeline", func(c *gin.Context) {
		c.Set("user_id", "user-1")
		handler.GetTimeline(c)
	})

	params := pagination.Params{Page: 3, Limit: 50}
	mockUseCase.On("GetTimeline", "user-1", params, false).Return(&entity.FeedResponse{
		Data:  []entity.FeedItem{},
		Page:  3,
		Limit: 50,
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/feed/timeline?page=3&limit=50", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestGetFollowingFeed_DebugFlagPassedThrough(t *testing.T) {
	mockUseCase := new(MockFeedUseCase)
	logger := logger.New()
	handler := NewFeedHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.GET("/feed/following", func(c *gin.Context) {
		c.Set("user_id", "user-1")
		handler.GetFollowingFeed(c)
	})

	params := pagination.Params{Page: 1, Limit: 20}
	mockUseCase.On("GetFollowingFeed", "user-1", params, true).Return(&entity.FeedResponse{
		Data: []entity.FeedItem{},
		Debug: &entity.FeedDebug{
			FollowCount: 2,
			PostsFound:  0,
		},
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/feed/following?debug=1", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.NotNil(t, response["debug"])

	mockUseCase.AssertExpectations(t)
}

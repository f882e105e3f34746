package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"openlove/internal/usecase"
	"openlove/pkg/logger"
	"openlove/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockInteractionUseCase is a mock implementation of InteractionUseCase
type MockInteractionUseCase struct {
	mock.Mock
}

func (m *MockInteractionUseCase) ToggleLike(userID, postID string, reaction models.Reaction) (*usecase.LikeResult, error) {
	args := m.Called(userID, postID, reaction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.LikeResult), args.Error(1)
}

func (m *MockInteractionUseCase) ToggleCommentLike(userID, commentID string) (bool, int64, error) {
	args := m.Called(userID, commentID)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

func (m *MockInteractionUseCase) GetLikeCount(postID string) (int64, error) {
	args := m.Called(postID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInteractionUseCase) IncrementView(userID, postID string) (bool, error) {
	args := m.Called(userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockInteractionUseCase) GetViewCount(postID string) (int64, error) {
	args := m.Called(postID)
	return args.Get(0).(int64), args.Error(1)
}

var _ usecase.InteractionUseCase = (*MockInteractionUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func newJSONBody(s string) *bytes.Buffer {
	return bytes.NewBufferString(s)
}

func TestToggleLike_Like(t *testing.T) {
	mockUseCase := new(MockInteractionUseCase)
	logger := logger.New()
	handler := NewInteractionHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.POST("/posts/:post_id/like", func(c *gin.Context) {
		c.Set("user_id", "user-123")
		handler.ToggleLike(c)
	})

	mockUseCase.On("ToggleLike", "user-123", "post-123", models.ReactionLike).
		Return(&usecase.LikeResult{IsLiked: true, LikesCount: 6, Reaction: "like"}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/post-123/like", nil)
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, true, response["isLiked"])
	assert.Equal(t, float64(6), response["likesCount"])

	mockUseCase.AssertExpectations(t)
}

func TestToggleLike_Unlike(t *testing.T) {
	mockUseCase := new(MockInteractionUseCase)
	logger := logger.New()
	handler := NewInteractionHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.POST("/posts/:post_id/like", func(c *gin.Context) {
		c.Set("user_id", "user-123")
		handler.ToggleLike(c)
	})

	mockUseCase.On("ToggleLike", "user-123", "post-123", models.ReactionLike).
		Return(&usecase.LikeResult{IsLiked: false, LikesCount: 5}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/post-123/like", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, false, response["isLiked"])
	assert.Equal(t, float64(5), response["likesCount"])

	mockUseCase.AssertExpectations(t)
}

func TestToggleLike_ReactionChange(t *testing.T) {
	mockUseCase := new(MockInteractionUseCase)
	logger := logger.New()
	handler := NewInteractionHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.POST("/posts/:post_id/like", func(c *gin.Context) {
		c.Set("user_id", "user-123")
		handler.ToggleLike(c)
	})

	mockUseCase.On("ToggleLike", "user-123", "post-123", models.ReactionLove).
		Return(&usecase.LikeResult{IsLiked: true, LikesCount: 5, Reaction: "love"}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/post-123/like", newJSONBody(`{"reaction":"love"}`))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "love", response["reaction"])

	mockUseCase.AssertExpectations(t)
}

func TestToggleLike_PostNotFound(t *testing.T) {
	mockUseCase := new(MockInteractionUseCase)
	logger := logger.New()
	handler := NewInteractionHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.POST("/posts/:post_id/like", handler.ToggleLike)

	mockUseCase.On("ToggleLike", "", "post-missing", models.ReactionLike).
		Return(nil, errors.New("post not found"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/post-missing/like", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestToggleLike_InvalidReaction(t *testing.T) {
	mockUseCase := new(MockInteractionUseCase)
	logger := logger.New()
	handler := NewInteractionHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.POST("/posts/:post_id/like", handler.ToggleLike)

	mockUseCase.On("ToggleLike", "", "post-123", models.Reaction("sparkle")).
		Return(nil, errors.New("invalid reaction"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/post-123/like", newJSONBody(`{"reaction":"sparkle"}`))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestGetLikeCount_Success(t *testing.T) {
	mockUseCase := new(MockInteractionUseCase)
	logger := logger.New()
	handler := NewInteractionHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.GET("/posts/:post_id/likes", handler.GetLikeCount)

	mockUseCase.On("GetLikeCount", "post-123").Return(int64(42), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/post-123/likes", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, float64(42), response["likes_count"])

	mockUseCase.AssertExpectations(t)
}

func TestToggleCommentLike_Success(t *testing.T) {
	mockUseCase := new(MockInteractionUseCase)
	logger := logger.New()
	handler := NewInteractionHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.POST("/comments/:comment_id/like", func(c *gin.Context) {
		c.Set("user_id", "user-123")
		handler.ToggleCommentLike(c)
	})

	mockUseCase.On("ToggleCommentLike", "user-123", "comment-1").Return(true, int64(3), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/comments/comment-1/like", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, true, response["isLiked"])
	assert.Equal(t, float64(3), response["likesCount"])

	mockUseCase.AssertExpectations(t)
}

func TestTrackView_FirstView(t *testing.T) {
	mockUseCase := new(MockInteractionUseCase)
	logger := logger.New()
	handler := NewInteractionHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.POST("/posts/:post_id/view", func(c *gin.Context) {
		c.Set("user_id", "user-123")
		handler.TrackView(c)
	})

	mockUseCase.On("IncrementView", "user-123", "post-123").Return(true, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/post-123/view", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, true, response["counted"])

	mockUseCase.AssertExpectations(t)
}

func TestTrackView_RepeatViewNotCounted(t *testing.T) {
	mockUseCase := new(MockInteractionUseCase)
	logger := logger.New()
	handler := NewInteractionHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.POST("/posts/:post_id/view", func(c *gin.Context) {
		c.Set("user_id", "user-123")
		handler.TrackView(c)
	})

	mockUseCase.On("IncrementView", "user-123", "post-123").Return(false, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/post-123/view", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, false, response["counted"])

	mockUseCase.AssertExpectations(t)
}

func TestGetViewCount_PostMissing(t *testing.T) {
	mockUseCase := new(MockInteractionUseCase)
	logger := logger.New()
	handler := NewInteractionHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.GET("/posts/:post_id/views", handler.GetViewCount)

	mockUseCase.On("GetViewCount", "missing").Return(int64(0), errors.New("post not found"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/missing/views", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockUseCase.AssertExpectations(t)
}

package main

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"openlove/pkg/cache"
	"openlove/pkg/config"
	"openlove/pkg/database"
	"openlove/pkg/logger"
	"openlove/pkg/models"
	"openlove/pkg/plan"
	"openlove/pkg/s3"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		panic(err)
	}

	if _, err := cache.NewRedisClient(cfg); err != nil {
		log.Warn("Redis unavailable, feed cache will warm lazily: %v", err)
	}

	if err := seedDatabase(db, s3Client, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, s3Client *s3.Client, log *logger.Logger) error {
	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}

	testUsers := []struct {
		email       string
		username    string
		displayName string
		password    string
		tier        plan.Tier
		verified    bool
	}{
		{"alice@test.com", "alice", "Alice Andrade", "password123", plan.TierGold, true},
		{"bob@test.com", "bob", "Bob Barbosa", "password123", plan.TierDiamond, true},
		{"carla@test.com", "carla", "Carla Costa", "password123", plan.TierFree, false},
		{"diego@test.com", "diego", "Diego Dias", "password123", plan.TierFree, true},
		{"elena@test.com", "elena", "Elena Esteves", "password123", plan.TierDiamondAnnual, true},
	}

	userIDs := make([]string, 0, len(testUsers))

	for _, userData := range testUsers {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(userData.password), bcrypt.DefaultCost)

		user := &models.User{
			Email:       userData.email,
			Username:    userData.username,
			DisplayName: userData.displayName,
			Password:    string(hashedPassword),
			Role:        models.RoleUser,
			IsActive:    true,
			IsVerified:  userData.verified,
			PlanTier:    userData.tier,
		}
		if userData.tier != plan.TierFree {
			expires := time.Now().Add(plan.Duration(userData.tier))
			user.PremiumExpiresAt = &expires
		}

		if err := user.BeforeCreate(nil); err != nil {
			return fmt.Errorf("failed to generate user ID: %w", err)
		}

		var existingUser models.User
		result := db.Where("email = ? OR username = ?", user.Email, user.Username).First(&existingUser)
		if result.Error == nil {
			log.Info("User %s already exists, skipping", user.Username)
			userIDs = append(userIDs, existingUser.ID)
			continue
		}

		if avatarURL, err := uploadAvatar(s3Client, httpClient, user.ID, user.Username, log); err != nil {
			log.Warn("Skipping avatar for %s: %v", user.Username, err)
		} else {
			user.AvatarURL = avatarURL
		}

		if err := db.Create(user).Error; err != nil {
			log.Error("Failed to create user %s: %v", user.Username, err)
			continue
		}

		log.Info("Created user: %s (%s, %s)", user.Username, user.Email, user.PlanTier)
		userIDs = append(userIDs, user.ID)
	}

	// Everyone follows everyone before them, so the first users have
	// the most followers and every timeline has content.
	for i := 0; i < len(userIDs); i++ {
		for j := 0; j < i; j++ {
			var existing models.Follow
			result := db.Where("follower_id = ? AND followed_id = ?", userIDs[i], userIDs[j]).First(&existing)
			if result.Error == nil {
				continue
			}

			follow := &models.Follow{
				FollowerID: userIDs[i],
				FollowedID: userIDs[j],
			}
			if err := follow.BeforeCreate(nil); err != nil {
				return fmt.Errorf("failed to generate follow ID: %w", err)
			}
			if err := db.Create(follow).Error; err != nil {
				log.Error("Failed to create follow: %v", err)
			}
		}
	}
	log.Info("Created follow graph")

	postIDs := make([]string, 0, len(userIDs)*3)
	visibilities := []models.PostVisibility{models.VisibilityPublic, models.VisibilityPublic, models.VisibilityFriends}

	for i, userID := range userIDs {
		for p := 0; p < 3; p++ {
			post := &models.Post{
				AuthorID:   userID,
				Content:    fmt.Sprintf("Post #%d from %s. Obrigado por acompanhar!", p+1, testUsers[i].username),
				Visibility: visibilities[p%len(visibilities)],
				IsPremium:  p == 2 && testUsers[i].tier != plan.TierFree,
			}
			if err := post.BeforeCreate(nil); err != nil {
				return fmt.Errorf("failed to generate post ID: %w", err)
			}
			if err := db.Create(post).Error; err != nil {
				log.Error("Failed to create post for %s: %v", testUsers[i].username, err)
				continue
			}
			postIDs = append(postIDs, post.ID)
		}
	}
	log.Info("Created %d posts", len(postIDs))

	reactions := []models.Reaction{models.ReactionLike, models.ReactionLove, models.ReactionLaugh}
	for i, postID := range postIDs {
		for j, userID := range userIDs {
			if (i+j)%3 != 0 {
				continue
			}
			like := &models.Like{
				UserID:     userID,
				TargetID:   postID,
				TargetType: models.TargetPost,
				Reaction:   reactions[(i+j)%len(reactions)],
			}
			if err := like.BeforeCreate(nil); err != nil {
				return fmt.Errorf("failed to generate like ID: %w", err)
			}
			if err := db.Create(like).Error; err != nil {
				continue
			}
			db.Model(&models.Post{}).Where("id = ?", postID).
				UpdateColumn("likes_count", gorm.Expr("likes_count + 1"))
		}
	}
	log.Info("Created likes")

	for i, postID := range postIDs {
		author := userIDs[(i+1)%len(userIDs)]
		comment := &models.Comment{
			PostID:   postID,
			AuthorID: author,
			Content:  fmt.Sprintf("Nice one! (seed comment %d)", i+1),
		}
		if err := comment.BeforeCreate(nil); err != nil {
			return fmt.Errorf("failed to generate comment ID: %w", err)
		}
		if err := db.Create(comment).Error; err != nil {
			continue
		}
		db.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("comments_count", gorm.Expr("comments_count + 1"))
	}
	log.Info("Created comments")

	if len(userIDs) > 0 {
		expires := time.Now().Add(48 * time.Hour)
		poll := &models.Poll{
			AuthorID:  userIDs[0],
			Question:  "Which feature should we ship next?",
			ExpiresAt: &expires,
		}
		if err := poll.BeforeCreate(nil); err != nil {
			return fmt.Errorf("failed to generate poll ID: %w", err)
		}
		if err := db.Create(poll).Error; err == nil {
			for pos, text := range []string{"Live streams", "Stories", "Voice notes"} {
				option := &models.PollOption{
					PollID:   poll.ID,
					Position: pos,
					Text:     text,
				}
				if err := option.BeforeCreate(nil); err != nil {
					return fmt.Errorf("failed to generate option ID: %w", err)
				}
				if err := db.Create(option).Error; err != nil {
					log.Error("Failed to create poll option: %v", err)
				}
			}
			log.Info("Created poll: %s", poll.Question)
		}
	}

	return nil
}

func uploadAvatar(s3Client *s3.Client, httpClient *http.Client, userID, username string, log *logger.Logger) (string, error) {
	cataasURL := fmt.Sprintf("https://cataas.com/cat/says/%s", username)

	resp, err := httpClient.Get(cataasURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch avatar image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("cataas API returned status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read image data: %w", err)
	}
	if len(imageData) == 0 {
		return "", fmt.Errorf("received empty image data")
	}

	fileKey := fmt.Sprintf("avatars/%s/seed.jpg", userID)
	avatarURL, err := s3Client.UploadBytes(fileKey, imageData, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar to S3: %w", err)
	}

	log.Info("Uploaded avatar for %s: %s", username, avatarURL)
	return avatarURL, nil
}

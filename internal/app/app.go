package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apiHTTP "openlove/internal/controller/http"
	"openlove/internal/gateway/abacatepay"
	"openlove/internal/gateway/stripegw"
	"openlove/internal/repo/persistent"
	"openlove/internal/usecase"
	"openlove/pkg/config"
	"openlove/pkg/jwt"
	"openlove/pkg/logger"
	"openlove/pkg/middleware"
	"openlove/pkg/queue"
	"openlove/pkg/s3"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "openlove/docs" // Swagger docs
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, s3Client *s3.Client, queueClient *queue.Client, redisClient *redis.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Initialize repositories
	userRepo := persistent.NewUserRepository(db)
	followRepo := persistent.NewFollowRepository(db)
	feedRepo := persistent.NewFeedRepository(db)
	postRepo := persistent.NewPostRepository(db)
	interactionRepo := persistent.NewInteractionRepository(db)
	commentRepo := persistent.NewCommentRepository(db)
	pollRepo := persistent.NewPollRepository(db)
	messageRepo := persistent.NewMessageRepository(db)
	communityRepo := persistent.NewCommunityRepository(db)
	eventRepo := persistent.NewEventRepository(db)
	paymentRepo := persistent.NewPaymentRepository(db)

	// Payment gateways
	stripeGateway := stripegw.New(cfg.StripeSecretKey, cfg.StripeWebhookSecret, cfg.DomainURL)
	pixGateway := abacatepay.New(cfg.AbacatePayAPIKey, cfg.AbacatePayBaseURL)

	// Initialize use cases
	authUseCase := usecase.NewAuthUseCase(userRepo, jwtService, log)
	userUseCase := usecase.NewUserUseCase(userRepo, followRepo, s3Client, queueClient, log)
	feedUseCase := usecase.NewFeedUseCase(feedRepo, userRepo, followRepo, redisClient, log, cfg.Debug)
	postUseCase := usecase.NewPostUseCase(postRepo, userRepo, followRepo, s3Client, log)
	interactionUseCase := usecase.NewInteractionUseCase(interactionRepo, postRepo, commentRepo, redisClient, queueClient, log)
	commentUseCase := usecase.NewCommentUseCase(commentRepo, postRepo, userRepo, queueClient, log)
	pollUseCase := usecase.NewPollUseCase(pollRepo, userRepo, log)
	shareUseCase := usecase.NewShareUseCase(postRepo, messageRepo, userRepo, log, cfg.DomainURL)
	messageUseCase := usecase.NewMessageUseCase(messageRepo, userRepo, queueClient, log)
	notificationUseCase := usecase.NewNotificationUseCase(redisClient, log)
	communityUseCase := usecase.NewCommunityUseCase(communityRepo, userRepo, log)
	eventUseCase := usecase.NewEventUseCase(eventRepo, userRepo, log)
	paymentUseCase := usecase.NewPaymentUseCase(paymentRepo, userRepo, stripeGateway, pixGateway, queueClient, log)

	// Drain notification tasks into the per-user store
	if queueClient != nil {
		go func() {
			if err := queueClient.ConsumeNotificationTasks(notificationUseCase.HandleTask); err != nil {
				log.Error("Notification consumer stopped: %v", err)
			}
		}()
	}

	// Initialize HTTP handlers
	authHandler := apiHTTP.NewAuthHandler(authUseCase, log)
	userHandler := apiHTTP.NewUserHandler(userUseCase, log)
	feedHandler := apiHTTP.NewFeedHandler(feedUseCase, log)
	postHandler := apiHTTP.NewPostHandler(postUseCase, log)
	interactionHandler := apiHTTP.NewInteractionHandler(interactionUseCase, log)
	commentHandler := apiHTTP.NewCommentHandler(commentUseCase, log)
	pollHandler := apiHTTP.NewPollHandler(pollUseCase, log)
	shareHandler := apiHTTP.NewShareHandler(shareUseCase, log)
	messageHandler := apiHTTP.NewMessageHandler(messageUseCase, log)
	notificationHandler := apiHTTP.NewNotificationHandler(notificationUseCase, log)
	communityHandler := apiHTTP.NewCommunityHandler(communityUseCase, log)
	eventHandler := apiHTTP.NewEventHandler(eventUseCase, log)
	paymentHandler := apiHTTP.NewPaymentHandler(paymentUseCase, log)

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		health := gin.H{"status": "ok"}
		if queueClient != nil {
			if depth, err := queueClient.GetQueueLength(); err != nil {
				health["queue"] = "unavailable"
			} else {
				health["queue"] = "ok"
				health["queue_depth"] = depth
			}
		}
		c.JSON(200, health)
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware(redisClient, log, 100, time.Minute))

	// Public routes
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		api.POST("/payments/stripe/webhook", paymentHandler.StripeWebhook)
		api.POST("/payments/pix/webhook", paymentHandler.PixWebhook)
	}

	// Routes that work anonymously but honor a token when present
	optional := api.Group("")
	optional.Use(middleware.OptionalAuthMiddleware(jwtService))
	{
		optional.GET("/posts/:post_id", postHandler.GetPost)
		optional.GET("/posts/:post_id/likes", interactionHandler.GetLikeCount)
		optional.GET("/posts/:post_id/views", interactionHandler.GetViewCount)
		optional.GET("/posts/:post_id/comments", commentHandler.ListComments)
		optional.GET("/polls/:poll_id", pollHandler.GetPoll)
		optional.GET("/users/:username", userHandler.GetProfile)
		optional.GET("/users/:username/followers", userHandler.ListFollowers)
		optional.GET("/users/:username/following", userHandler.ListFollowing)
		optional.GET("/communities", communityHandler.ListCommunities)
		optional.GET("/communities/:community_id", communityHandler.GetCommunity)
		optional.GET("/events", eventHandler.ListEvents)
	}

	// Authenticated routes
	private := api.Group("")
	private.Use(middleware.AuthMiddleware(jwtService))
	{
		private.GET("/feed/timeline", feedHandler.GetTimeline)
		private.GET("/feed/following", feedHandler.GetFollowingFeed)

		private.POST("/posts", postHandler.CreatePost)
		private.DELETE("/posts/:post_id", postHandler.DeletePost)
		private.POST("/posts/:post_id/like", interactionHandler.ToggleLike)
		private.POST("/posts/:post_id/view", interactionHandler.TrackView)
		private.POST("/posts/:post_id/comments", commentHandler.CreateComment)
		private.POST("/posts/:post_id/share", shareHandler.SharePost)

		private.POST("/comments/:comment_id/like", interactionHandler.ToggleCommentLike)
		private.DELETE("/comments/:comment_id", commentHandler.DeleteComment)

		private.POST("/polls", pollHandler.CreatePoll)
		private.POST("/polls/:poll_id/vote", pollHandler.Vote)

		private.PATCH("/users/me", userHandler.UpdateProfile)
		private.POST("/users/me/avatar", userHandler.UploadAvatar)
		private.POST("/users/:username/follow", userHandler.Follow)
		private.DELETE("/users/:username/follow", userHandler.Unfollow)

		private.POST("/messages", messageHandler.SendMessage)
		private.GET("/messages/:user_id", messageHandler.GetConversation)

		private.GET("/notifications", notificationHandler.GetNotifications)
		private.DELETE("/notifications", notificationHandler.ClearNotifications)

		private.POST("/communities", communityHandler.CreateCommunity)
		private.POST("/communities/:community_id/join", communityHandler.JoinCommunity)
		private.POST("/communities/:community_id/leave", communityHandler.LeaveCommunity)
		private.PATCH("/communities/:community_id", communityHandler.UpdateCommunity)
		private.DELETE("/communities/:community_id", communityHandler.DeleteCommunity)

		private.POST("/events", eventHandler.CreateEvent)
		private.DELETE("/events/:event_id", eventHandler.CancelEvent)

		private.POST("/payments/stripe/checkout", paymentHandler.CreateStripeCheckout)
		private.POST("/payments/pix/charge", paymentHandler.CreatePixCharge)
		private.POST("/payments/pix/:charge_id/confirm", paymentHandler.ConfirmPixCharge)
		private.GET("/payments/subscription", paymentHandler.GetSubscription)
		private.DELETE("/payments/subscription", paymentHandler.CancelSubscription)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("OpenLove API starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Close database connection
	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	// Close Redis connection
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	// Close RabbitMQ connection
	if queueClient != nil {
		queueClient.Close()
	}

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("OpenLove API exited")
}

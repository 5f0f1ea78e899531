package router

import (
	"github.com/gin-gonic/gin"
	"github.com/livreacesso/livre-acesso-backend/config"
	"github.com/livreacesso/livre-acesso-backend/internal/app/controller"
	"github.com/livreacesso/livre-acesso-backend/internal/middleware"
	"github.com/livreacesso/livre-acesso-backend/internal/storage"
)

type Router struct {
	placeController    *controller.PlaceController
	reviewController   *controller.ReviewController
	favoriteController *controller.FavoriteController
	featureController  *controller.FeatureController
	userController     *controller.UserController
	feedbackController *controller.FeedbackController
	authMiddleware     *middleware.AuthMiddleware
	config             *config.Config
}

func NewRouter(
	placeController *controller.PlaceController,
	reviewController *controller.ReviewController,
	favoriteController *controller.FavoriteController,
	featureController *controller.FeatureController,
	userController *controller.UserController,
	feedbackController *controller.FeedbackController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		placeController:    placeController,
		reviewController:   reviewController,
		favoriteController: favoriteController,
		featureController:  featureController,
		userController:     userController,
		feedbackController: feedbackController,
		authMiddleware:     authMiddleware,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Livre Acesso API is running",
		})
	})

	// Photo files are served as static content next to the API
	if r.config.Storage.Driver == "local" {
		router.Static(storage.PlacePublicPath, r.config.Storage.UploadDir)
	}

	v1 := router.Group("/api/v1")
	{
		features := v1.Group("/features")
		{
			features.GET("", r.featureController.ListFeatures)
		}

		places := v1.Group("/places")
		{
			places.GET("", r.authMiddleware.OptionalAuthenticate(), r.placeController.SearchPlaces)
			places.GET("/:id", r.authMiddleware.OptionalAuthenticate(), r.placeController.GetPlaceByID)
			places.POST("", r.authMiddleware.Authenticate(), r.placeController.CreatePlace)

			places.GET("/:id/reviews", r.reviewController.ListReviews)
			places.POST("/:id/reviews", r.authMiddleware.Authenticate(), r.reviewController.CreateReview)

			places.POST("/:id/favorites", r.authMiddleware.Authenticate(), r.favoriteController.AddFavorite)
			places.DELETE("/:id/favorites", r.authMiddleware.Authenticate(), r.favoriteController.RemoveFavorite)
		}

		users := v1.Group("/users")
		{
			users.GET("/me", r.authMiddleware.Authenticate(), r.userController.GetMe)
		}

		feedback := v1.Group("/feedback")
		{
			feedback.POST("", r.feedbackController.SaveFeedback)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

package transport

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kutanig/explore-with-me/internal/transport/middleware"
)

type Handlers struct {
	Event       *EventHandler
	Request     *RequestHandler
	Rating      *RatingHandler
	User        *UserHandler
	Category    *CategoryHandler
	Compilation *CompilationHandler
}

func InitRoutes(h *Handlers) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(30 * time.Second))

	// Публичные маршруты
	events := router.Group("/events")
	{
		events.GET("", h.Event.SearchPublishedEvents)
		events.GET("/:id", h.Event.GetPublishedEvent)
	}

	categories := router.Group("/categories")
	{
		categories.GET("", h.Category.GetCategories)
		categories.GET("/:catId", h.Category.GetCategory)
	}

	compilations := router.Group("/compilations")
	{
		compilations.GET("", h.Compilation.GetCompilations)
		compilations.GET("/:compId", h.Compilation.GetCompilation)
	}

	rating := router.Group("/rating")
	{
		rating.GET("/events/:eventId", h.Rating.GetEventRating)
		rating.GET("/users/top", h.Rating.GetTopUsers)
		rating.GET("/users/:userId", h.Rating.GetUserRating)
	}

	// Маршруты пользователя
	users := router.Group("/users/:userId")
	{
		userEvents := users.Group("/events")
		{
			userEvents.GET("", h.Event.GetUserEvents)
			userEvents.POST("", h.Event.CreateEvent)
			userEvents.GET("/:eventId", h.Event.GetUserEvent)
			userEvents.PATCH("/:eventId", h.Event.UpdateUserEvent)
			userEvents.GET("/:eventId/requests", h.Request.GetEventRequests)
			userEvents.PATCH("/:eventId/requests", h.Request.UpdateRequestStatuses)
			userEvents.POST("/:eventId/rating", h.Rating.AddRating)
			userEvents.DELETE("/:eventId/rating", h.Rating.RemoveRating)
		}

		userRequests := users.Group("/requests")
		{
			userRequests.GET("", h.Request.GetUserRequests)
			userRequests.POST("", h.Request.CreateRequest)
			userRequests.PATCH("/:requestId/cancel", h.Request.CancelRequest)
		}

		users.GET("/rating", h.Rating.GetUserRating)
	}

	// Административные маршруты
	admin := router.Group("/admin")
	{
		admin.GET("/events", h.Event.SearchAdminEvents)
		admin.PATCH("/events/:eventId", h.Event.UpdateAdminEvent)

		admin.POST("/categories", h.Category.CreateCategory)
		admin.PATCH("/categories/:catId", h.Category.UpdateCategory)
		admin.DELETE("/categories/:catId", h.Category.DeleteCategory)

		admin.GET("/users", h.User.GetUsers)
		admin.POST("/users", h.User.CreateUser)
		admin.DELETE("/users/:userId", h.User.DeleteUser)

		admin.POST("/compilations", h.Compilation.CreateCompilation)
		admin.PATCH("/compilations/:compId", h.Compilation.UpdateCompilation)
		admin.DELETE("/compilations/:compId", h.Compilation.DeleteCompilation)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}

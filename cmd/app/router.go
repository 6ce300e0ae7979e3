package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"serenestays/internal/api/controllers"
	"serenestays/internal/config"
	mem "serenestays/pkg/memcache"
	"serenestays/pkg/middleware"
	"serenestays/pkg/utils"
)

func ProvideRouter(
	cfg *config.Config,
	logger *zap.Logger,
	tokens *utils.TokenManager,
	revoked mem.RevokedTokenStore,
	authController *controllers.AuthController,
	roomController *controllers.RoomController,
	bookingController *controllers.BookingController,
	userController *controllers.UserController,
	subscriptionController *controllers.SubscriptionController) *gin.Engine {

	gin.SetMode(cfg.GinMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	guard := middleware.CookieAuthMiddleware(tokens, revoked)

	RegisterRoutes(r, guard, authController, roomController, bookingController, userController, subscriptionController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	guard gin.HandlerFunc,
	authController *controllers.AuthController,
	roomController *controllers.RoomController,
	bookingController *controllers.BookingController,
	userController *controllers.UserController,
	subscriptionController *controllers.SubscriptionController) {

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Serene-Stays server is running......")
	})

	r.POST("/jwt", authController.IssueToken)
	r.POST("/logout", authController.Logout)

	roomsGroup := r.Group("/rooms")
	roomsGroup.GET("", roomController.ListRooms)
	roomsGroup.GET("/:id", roomController.GetRoom)
	roomsGroup.POST("/:id", roomController.AddReview)
	roomsGroup.PATCH("/:id", roomController.SetAvailability)

	bookingsGroup := r.Group("/bookings")
	bookingsGroup.POST("", bookingController.CreateBooking)
	bookingsGroup.GET("", guard, middleware.OwnerMiddleware("email"), bookingController.ListMyBookings)
	bookingsGroup.PATCH("/:id", bookingController.UpdateBookedDate)
	bookingsGroup.DELETE("/:id", bookingController.CancelBooking)
	r.GET("/bookings-date", bookingController.ListBookedDates)

	r.POST("/users", userController.CreateUser)
	r.GET("/users", userController.GetUser)

	r.POST("/subscribe", subscriptionController.Subscribe)
	r.GET("/subscribe", subscriptionController.GetSubscription)
}

package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	config "github.com/ethvolunteer/volunteer-backend-go/config"
	controllers "github.com/ethvolunteer/volunteer-backend-go/controllers"
	middleware "github.com/ethvolunteer/volunteer-backend-go/middleware"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config) {
	auth := middleware.AuthMiddleware(cfg)
	isNGO := middleware.RequireRole("ngo")
	isAdmin := middleware.RequireRole("admin")
	verifyNGO := middleware.VerifyNGO(cfg)
	verifyAdmin := middleware.VerifyAdmin(cfg)

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Server is running!")
	})

	// static event images
	r.Static("/uploads", cfg.UploadDir)

	// auth
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register/volunteer", controllers.RegisterVolunteer(cfg))
		authGroup.POST("/register/ngo", controllers.RegisterNGO(cfg))
		authGroup.POST("/login", controllers.Login(cfg))
		authGroup.POST("/login-ngo", controllers.LoginNGO(cfg))
	}

	// admin accounts
	admin := r.Group("/admin")
	{
		admin.POST("/register", controllers.RegisterAdmin(cfg))
		admin.POST("/login", controllers.LoginAdmin(cfg))
	}

	// events
	events := r.Group("/events")
	{
		// public query surface
		events.GET("", controllers.ListApprovedEvents(cfg))
		events.GET("/approved", controllers.ListApprovedEvents(cfg))
		events.GET("/by-location", controllers.EventsByLocation(cfg))
		events.GET("/:id", controllers.GetEvent(cfg))

		// admin-scoped listings and moderation
		events.GET("/pending", auth, isAdmin, verifyAdmin, controllers.ListPendingEvents(cfg))
		events.GET("/rejected", auth, isAdmin, verifyAdmin, controllers.ListRejectedEvents(cfg))
		events.PUT("/approve/:id", auth, isAdmin, verifyAdmin, controllers.ApproveEvent(cfg))
		events.PUT("/reject/:id", auth, isAdmin, verifyAdmin, controllers.RejectEvent(cfg))
		events.PUT("/disapprove/:id", auth, isAdmin, verifyAdmin, controllers.DisapproveEvent(cfg))
		events.PUT("/unreject/:id", auth, isAdmin, verifyAdmin, controllers.UnrejectEvent(cfg))

		// NGO-scoped lifecycle
		events.POST("/create", auth, isNGO, verifyNGO, controllers.CreateEvent(cfg))
		events.POST("/:id/comments/:commentId/reply", auth, isNGO, verifyNGO, controllers.ReplyToComment(cfg))
		events.PUT("/update/:id", auth, controllers.UpdateEvent(cfg))
		events.DELETE("/delete/:id", auth, controllers.DeleteEvent(cfg))

		// engagement
		events.POST("/likes", auth, controllers.LikeEvent(cfg))
		events.POST("/unlike", auth, controllers.UnlikeEvent(cfg))
		events.POST("/comment", auth, controllers.CommentEvent(cfg))
		events.POST("/follow", auth, controllers.FollowEvent(cfg))
		events.POST("/join-event", auth, controllers.JoinEvent(cfg))
		events.POST("/unjoin-event", auth, controllers.UnjoinEvent(cfg))
		events.GET("/joined", auth, controllers.ListJoinedEvents(cfg))
		events.GET("/followed", auth, controllers.ListFollowedEvents(cfg))
	}

	// volunteer accounts (admin management + profile)
	users := r.Group("/users")
	{
		users.GET("", auth, isAdmin, verifyAdmin, controllers.ListUsers(cfg))
		users.DELETE("/:id", auth, isAdmin, verifyAdmin, controllers.DeleteUser(cfg))
		users.PATCH("/:id/block", auth, isAdmin, verifyAdmin, controllers.BlockUser(cfg))
		users.GET("/profile/:email", auth, controllers.GetProfile(cfg))
		users.PUT("/update-profile", auth, controllers.UpdateProfile(cfg))
	}

	// NGO accounts (admin management)
	ngo := r.Group("/ngo")
	{
		ngo.GET("/ngo-users", auth, isAdmin, verifyAdmin, controllers.ListNGOs(cfg))
		ngo.DELETE("/ngo-users/:id", auth, isAdmin, verifyAdmin, controllers.DeleteNGO(cfg))
		ngo.PATCH("/ngo-users/:id", auth, isAdmin, verifyAdmin, controllers.UpdateNGOStatus(cfg))
	}

	// in-app notifications
	notifs := r.Group("/notifications")
	notifs.Use(auth)
	{
		notifs.GET("", controllers.ListNotifications(cfg))
		notifs.PATCH("/:id/read", controllers.MarkNotificationRead(cfg))
	}
}

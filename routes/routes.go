package routes

import (
	"github.com/gin-gonic/gin"

	"foodshot-admin-api/controllers"
	"foodshot-admin-api/metrics"
	"foodshot-admin-api/middleware"
	"foodshot-admin-api/models"
)

func SetupRoutes(router *gin.Engine) {
	router.GET("/metrics", metrics.Handler())

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			public.POST("/login", controllers.Login)

			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Foodshot Admin API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/profile", controllers.GetProfile)

			// Submissions
			submissions := protected.Group("/submissions")
			{
				submissions.GET("", controllers.GetSubmissions)
				submissions.GET("/:id", controllers.GetSubmission)
				submissions.POST("", middleware.RequireRole(models.RoleAdmin), controllers.CreateSubmission)
				submissions.PUT("/:id/editor", middleware.RequireRole(models.RoleAdmin), controllers.AssignEditor)

				// Status changes drive the serving ledger; both roles use it.
				submissions.PATCH("/:id/status", controllers.UpdateSubmissionStatus)
			}

			// Clients
			clients := protected.Group("/clients")
			{
				clients.GET("", controllers.GetClients)
				clients.GET("/:id", controllers.GetClient)
				clients.POST("", middleware.RequireRole(models.RoleAdmin), controllers.CreateClient)
				clients.PUT("/:id", middleware.RequireRole(models.RoleAdmin), controllers.UpdateClient)
			}

			// Leads
			leads := protected.Group("/leads")
			leads.Use(middleware.RequireRole(models.RoleAdmin))
			{
				leads.GET("", controllers.GetLeads)
				leads.POST("", controllers.CreateLead)
				leads.PUT("/:id/status", controllers.UpdateLeadStatus)
				leads.POST("/:id/convert", controllers.ConvertLead)
			}

			// Packages
			packages := protected.Group("/packages")
			{
				packages.GET("", controllers.GetPackages)
				packages.POST("", middleware.RequireRole(models.RoleAdmin), controllers.CreatePackage)
			}

			// Payments
			payments := protected.Group("/payments")
			payments.Use(middleware.RequireRole(models.RoleAdmin))
			{
				payments.GET("", controllers.GetPayments)
				payments.POST("", controllers.CreatePayment)
			}

			// Notifications
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", controllers.GetMyNotifications)
				notifications.PUT("/:id/read", controllers.MarkNotificationRead)
				notifications.PUT("/read-all", controllers.MarkAllNotificationsRead)
			}
		}
	}
}

// Package routes wires controllers to the HTTP router
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/derya/admitly/internal/app/controllers"
	"github.com/derya/admitly/internal/app/models"
	"github.com/derya/admitly/internal/middleware"
	"github.com/derya/admitly/internal/pkg/auth"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	applicationController *controllers.ApplicationController,
	meritListController *controllers.MeritListController,
	criteriaController *controllers.CriteriaController,
	jwtService *auth.JWTService,
) {
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/login", authController.Login)
	}

	// Application submission is public: applicants have no account
	v1.POST("/applications", applicationController.SubmitApplication)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(middleware.Authentication(jwtService))
	{
		applications := authenticated.Group("/applications")
		{
			applications.GET("", applicationController.GetApplications)
			applications.GET("/:id", applicationController.GetApplication)
			applications.POST("/:id/check-eligibility", applicationController.CheckEligibility)
			applications.POST("/:id/transition", applicationController.Transition)
		}

		meritLists := authenticated.Group("/merit-lists")
		{
			meritLists.POST("", meritListController.Generate)
			meritLists.GET("/latest", meritListController.GetLatestMeritList)
			meritLists.GET("/:id", meritListController.GetMeritList)
		}

		authenticated.GET("/programs/:programId/criteria/active", criteriaController.GetActiveCriteria)

		// Criteria administration requires the admin role
		criteriaAdmin := authenticated.Group("/criteria")
		criteriaAdmin.Use(middleware.RequireRole(models.RoleAdmin))
		{
			criteriaAdmin.POST("", criteriaController.CreateCriteria)
		}
	}
}

package app

import (
	"trading_edu_backend/docs"
	"trading_edu_backend/internal/config"
	"trading_edu_backend/internal/middleware"
	"trading_edu_backend/internal/model"
	"trading_edu_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// Authenticated routes
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		// Interview content tree: readable by any signed-in user.
		interview := authGroup.Group("/interview")
		{
			interview.GET("/tree", c.interview.GetTree)
			interview.GET("/topics", c.interview.ListTopics)
			interview.GET("/sections", c.interview.ListSections)
			interview.GET("/questions", c.interview.ListQuestions)
		}

		// Study exercises and grading.
		study := authGroup.Group("/study")
		{
			study.GET("", c.study.ListExercises)
			study.GET("/:id", c.study.GetExercise)
			study.POST("/grade", c.study.GradeSession)
		}

		// Content authoring: teachers and admins only.
		author := authGroup.Group("")
		author.Use(middleware.RoleMiddleware(model.Teacher))
		{
			author.POST("/interview/topic", c.interview.CreateTopic)
			author.PUT("/interview/topic/:id", c.interview.UpdateTopic)
			author.DELETE("/interview/topic/:id", c.interview.DeleteTopic)

			author.POST("/interview/section", c.interview.CreateSection)
			author.PUT("/interview/section/:id", c.interview.UpdateSection)
			author.DELETE("/interview/section/:id", c.interview.DeleteSection)

			author.POST("/interview/question", c.interview.CreateQuestion)
			author.PUT("/interview/question/:id", c.interview.UpdateQuestion)
			author.DELETE("/interview/question/:id", c.interview.DeleteQuestion)

			author.POST("/study", c.study.CreateExercise)
			author.PUT("/study/:id", c.study.UpdateExercise)
			author.DELETE("/study/:id", c.study.DeleteExercise)

			author.POST("/media/upload", c.media.Upload)
		}
	}
}

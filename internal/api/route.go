package api

import (
	"Fanscope/internal/api/middleware"
	"Fanscope/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			// 无需登录即可访问的接口
			userGroup.POST("/login", group.UserHandler.Login)
			userGroup.POST("/register", group.UserHandler.Register)

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
				authGroup.GET("/info", group.UserHandler.GetUserInfo)
			}
		}

		accountGroup := apiGroup.Group("/accounts")
		{
			accountGroup.Use(middleware.AuthMiddleware())
			accountGroup.Use(middleware.RateLimitMiddleware())
			{
				accountGroup.POST("", group.AccountHandler.Bind)
				accountGroup.GET("", group.AccountHandler.List)
				accountGroup.DELETE("/:account_id", group.AccountHandler.Unbind)
				accountGroup.POST("/:account_id/avatar", group.AccountHandler.UploadAvatar)
			}
		}

		metricsGroup := apiGroup.Group("/metrics")
		{
			metricsGroup.Use(middleware.AuthMiddleware())
			metricsGroup.Use(middleware.RateLimitMiddleware())
			{
				metricsGroup.GET("/latest", group.MetricsHandler.GetLatest)
				metricsGroup.GET("/history", group.MetricsHandler.GetHistory)
				metricsGroup.GET("/search", group.MetricsHandler.Search)
			}
		}

		trendingGroup := apiGroup.Group("/trending")
		{
			trendingGroup.Use(middleware.AuthMiddleware())
			trendingGroup.Use(middleware.RateLimitMiddleware())
			{
				trendingGroup.GET("", group.TrendingHandler.GetTrending)
			}
		}

		recommendGroup := apiGroup.Group("/recommendations")
		{
			recommendGroup.Use(middleware.AuthMiddleware())
			recommendGroup.Use(middleware.RateLimitMiddleware())
			{
				recommendGroup.GET("", group.RecommendHandler.GetRecommendations)
			}
		}

		exportGroup := apiGroup.Group("/exports")
		{
			exportGroup.Use(middleware.AuthMiddleware())
			exportGroup.Use(middleware.RateLimitMiddleware())
			{
				exportGroup.POST("", group.ExportHandler.Export)
				exportGroup.GET("", group.ExportHandler.ListExports)
			}
		}

		taskGroup := apiGroup.Group("/tasks")
		{
			taskGroup.Use(middleware.AuthMiddleware())
			taskGroup.Use(middleware.RateLimitMiddleware())
			{
				taskGroup.POST("", group.TaskHandler.Submit)
				taskGroup.POST("/backfill", group.TaskHandler.Backfill)
				taskGroup.GET("/:task_id", group.TaskHandler.GetStatus)
			}
		}
	}

	return r
}

package router

import (
	"fintrack/api"
	"fintrack/config"
	_ "fintrack/docs"
	"fintrack/logging"
	"fintrack/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter wires every route
func SetupRouter(cfg *config.Config, log *logrus.Logger) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.RequestLogger(log))
	r.Use(CORSMiddleware())

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		authHandler := api.NewAuthHandler(cfg)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", middleware.LoginRateLimit(cfg.Login.MaxAttempts, cfg.Login.Window()), authHandler.Login)
		}

		taxonomyHandler := api.NewTaxonomyHandler()
		v1.GET("/types", taxonomyHandler.Types)
		v1.GET("/categories", taxonomyHandler.Categories)

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth())
		{
			authorized.GET("/auth/profile", authHandler.GetProfile)

			transactionHandler := api.NewTransactionHandler(cfg)
			transactions := authorized.Group("/transactions")
			{
				transactions.GET("", transactionHandler.List)
				transactions.POST("", transactionHandler.Create)
				transactions.DELETE("/:id", transactionHandler.Delete)
			}

			budgetHandler := api.NewBudgetHandler()
			budgets := authorized.Group("/budgets")
			{
				budgets.GET("", budgetHandler.List)
				budgets.POST("", budgetHandler.Create)
				budgets.PUT("/:id", budgetHandler.Update)
				budgets.DELETE("/:id", budgetHandler.Delete)
			}

			statisticsHandler := api.NewStatisticsHandler(cfg)
			statistics := authorized.Group("/statistics")
			{
				statistics.GET("/dashboard", statisticsHandler.Dashboard)
				statistics.GET("/categories", statisticsHandler.Categories)
				statistics.GET("/months", statisticsHandler.Months)
				statistics.GET("/budgets", statisticsHandler.Budgets)
			}

			exportHandler := api.NewExportHandler(cfg)
			export := authorized.Group("/export")
			{
				export.GET("/csv", exportHandler.ExportCSV)
				export.GET("/json", exportHandler.ExportJSON)
				export.GET("/excel", exportHandler.ExportExcel)
			}
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return r
}

// CORSMiddleware allows cross-origin API calls
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

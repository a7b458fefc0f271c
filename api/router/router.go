package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"labor-contract/api/handler"
	"labor-contract/logger"
)

// NewEngine builds the gin engine with recovery, request logging and all
// routes.
func NewEngine(contractH *handler.ContractHandler, sessionH *handler.SessionHandler) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(), gin.Recovery())
	RegisterRoutes(r, contractH, sessionH)
	return r
}

func RegisterRoutes(r *gin.Engine, contractH *handler.ContractHandler, sessionH *handler.SessionHandler) {
	r.GET("/healthz", handler.Health)

	// 单页前端使用的无状态接口
	api := r.Group("/api")
	{
		api.POST("/review", contractH.Review)
		api.POST("/chat", contractH.Chat)
		api.POST("/classify-job", contractH.ClassifyJob)
		api.POST("/compliance/evaluate", contractH.Evaluate)
	}

	v1 := r.Group("/api/v1")
	{
		sessions := v1.Group("/sessions")
		{
			sessions.POST("", sessionH.Create)
			sessions.GET("/:id", sessionH.Get)
			sessions.DELETE("/:id", sessionH.Delete)
			sessions.POST("/:id/actions", sessionH.Dispatch)
			sessions.GET("/:id/compliance", sessionH.Compliance)
			sessions.POST("/:id/classify-job", sessionH.ClassifyJob)
			sessions.POST("/:id/review", sessionH.Review)
			sessions.POST("/:id/chat", sessionH.Chat)
		}
		v1.GET("/catalog/search", contractH.SearchOccupations)
	}
}

// RequestLogger logs one line per request with zap.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		switch {
		case c.Writer.Status() >= 500:
			logger.L().Error("http request", fields...)
		case c.Writer.Status() >= 400:
			logger.L().Warn("http request", fields...)
		default:
			logger.L().Info("http request", fields...)
		}
	}
}

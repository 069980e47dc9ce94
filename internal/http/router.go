package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cultura-llm/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	sessions *service.SessionService,
	chatH *ChatHandler,
	shareH *ShareHandler,
	exportH *ExportHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Rutas publicas: emision de sesion, lectura de enlaces compartidos,
	// catalogo de idiomas.
	r.POST("/session", chatH.CreateSession)
	r.GET("/shared/:token", shareH.GetShared)
	r.GET("/languages", chatH.GetLanguages)
	r.GET("/culture/:lang/tip", chatH.GetCulturalTip)

	// Rutas protegidas por token de sesion.
	auth := r.Group("/", SessionAuthMiddleware(sessions))
	auth.POST("/message", chatH.PostMessage)
	auth.POST("/chat/clear", chatH.ClearChat)
	auth.GET("/history", chatH.GetHistory)
	auth.POST("/share", shareH.CreateShare)
	auth.DELETE("/shared/:token", shareH.DeleteShared)
	auth.GET("/shared/:token/stats", shareH.ShareStats)
	auth.GET("/export/:format", exportH.Export)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}

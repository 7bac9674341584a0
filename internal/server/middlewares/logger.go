package middlewares

import (
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logger logs every request on the global logger. Status polling is skipped.
func Logger() gin.HandlerFunc {
	return ginzap.GinzapWithConfig(zap.L().Named("http"), &ginzap.Config{
		TimeFormat: time.RFC3339,
		UTC:        true,
		SkipPaths:  []string{"/api/v1/status"},
	})
}

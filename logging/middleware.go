package logging

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs one line per request with its timing.
func RequestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   c.Writer.Status(),
			"duration": time.Since(start).Milliseconds(),
			"client":   c.ClientIP(),
		})
		if uid, ok := c.Get("userID"); ok {
			entry = entry.WithField("user_id", uid)
		}
		if len(c.Errors) > 0 {
			entry.WithError(c.Errors.Last()).Error("Handler.Error")
			return
		}
		if c.Writer.Status() >= 500 {
			entry.Error("Handler.Complete")
			return
		}
		entry.Info("Handler.Complete")
	}
}

package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/panjf2000/ants/v2"
)

// ContextSSEWriteLockKey holds the mutex serializing writes to the response;
// gin's ResponseWriter is not safe for concurrent use, and the keepalive
// ticker writes from a pool goroutine.
const ContextSSEWriteLockKey = "sseWriteLock"

// SSEMiddleware sets event-stream headers and emits comment keepalives so
// proxies do not drop idle preview streams.
func SSEMiddleware(workerPool *ants.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")

		writeLock := &sync.Mutex{}
		c.Set(ContextSSEWriteLockKey, writeLock)

		clientGone := c.Request.Context().Done()

		err := workerPool.Submit(func() {
			ticker := time.NewTicker(15 * time.Second)
			defer ticker.Stop()

			for {
				select {
				case <-ticker.C:
					writeLock.Lock()
					_, err := c.Writer.WriteString(": keepalive\n\n")
					if err == nil {
						c.Writer.Flush()
					}
					writeLock.Unlock()
					if err != nil {
						return
					}
				case <-clientGone:
					return
				}
			}
		})
		if err != nil {
			c.AbortWithStatusJSON(500, gin.H{"error": err.Error()})
			return
		}

		c.Next()
	}
}

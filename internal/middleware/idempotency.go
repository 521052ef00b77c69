package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Idempotency short-circuits repeated mutating requests carrying the same
// Idempotency-Key. The first request takes a short-lived lock; duplicates
// arriving while it runs get a 409, duplicates after completion get the
// cached reply.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		idempKey := c.GetHeader("Idempotency-Key")
		if idempKey == "" || (c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut) {
			c.Next()
			return
		}

		cacheKey := fmt.Sprintf("idemp:%s:%s", c.FullPath(), idempKey)
		lockKey := cacheKey + ":lock"

		val, err := rdb.Get(c.Request.Context(), cacheKey).Result()
		if err == nil {
			var cachedRes any
			_ = json.Unmarshal([]byte(val), &cachedRes)
			c.AbortWithStatusJSON(http.StatusOK, gin.H{"ok": true, "data": cachedRes})
			return
		}

		// Short expiry so a crashed request releases the lock by itself.
		isNew, _ := rdb.SetNX(c.Request.Context(), lockKey, "locked", 30*time.Second).Result()
		if !isNew {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"code":    "PROCESSING",
				"message": "A request with this idempotency key is already in progress",
			})
			return
		}

		// Handlers use these to store the final response and drop the lock.
		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		c.Next()
	}
}

package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"rofoportal/internal/model"
	"rofoportal/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Health returns a JSON health check response.
// Checks the tabular store and Redis connectivity; never exposes internals.
func Health(tab store.Tabular, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		// A missing baseline table still means the store itself is reachable.
		storeStatus := "connected"
		if _, err := tab.Header(ctx, model.TableBaseline); err != nil && !errors.Is(err, store.ErrTableNotFound) {
			storeStatus = "error"
		}

		redisStatus := "connected"
		if rdb.Ping(ctx).Err() != nil {
			redisStatus = "error"
		}

		status := http.StatusOK
		if storeStatus != "connected" || redisStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":    status == http.StatusOK,
			"store": storeStatus,
			"redis": redisStatus,
		})
	}
}

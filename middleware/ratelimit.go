package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

// limiterKey 已登录按用户计数，否则按客户端 IP
func limiterKey(c *gin.Context) string {
	if id := GetCurrentUserID(c); id != 0 {
		return "u:" + strconv.FormatUint(uint64(id), 10)
	}
	return "ip:" + c.ClientIP()
}

// RateLimit 滑动窗口限流：同一调用方在 window 内最多 maxRequests 次，超过返回 429。
// 窗口记录放在 go-cache 中，空闲超过 window 的调用方由缓存自动清理。
func RateLimit(maxRequests int, window time.Duration, message string) gin.HandlerFunc {
	var mu sync.Mutex
	hits := cache.New(window, 2*window)

	return func(c *gin.Context) {
		key := limiterKey(c)
		now := time.Now()
		cutoff := now.Add(-window)

		mu.Lock()
		var recent []time.Time
		if v, ok := hits.Get(key); ok {
			for _, t := range v.([]time.Time) {
				if t.After(cutoff) {
					recent = append(recent, t)
				}
			}
		}
		if len(recent) >= maxRequests {
			hits.SetDefault(key, recent)
			mu.Unlock()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": message,
			})
			return
		}
		hits.SetDefault(key, append(recent, now))
		mu.Unlock()

		c.Next()
	}
}

// PlanRateLimit 行程规划接口限流，每个调用方每分钟 perMinute 次，<= 0 时不限流
func PlanRateLimit(perMinute int) gin.HandlerFunc {
	if perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return RateLimit(perMinute, time.Minute, "规划请求过于频繁，请稍后再试")
}

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/nz-walks-api/pkg/response"
)

// ipFromCtx prefers the address RealIP resolved from proxy headers.
func ipFromCtx(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

// KeyFunc names the Redis counter a request is charged to.
type KeyFunc func(c *gin.Context) string

// KeyByIP shares one budget across every route the limiter is mounted on.
func KeyByIP() KeyFunc {
	return func(c *gin.Context) string {
		return "rl:ip:" + ipFromCtx(c)
	}
}

// KeyByIPAndPath gives each route template its own budget, so /api/health
// polling never eats into /api/regions.
func KeyByIPAndPath() KeyFunc {
	return func(c *gin.Context) string {
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		return "rl:path:" + route + ":ip:" + ipFromCtx(c)
	}
}

// AllowFunc exempts a request from the limiter when it returns true.
type AllowFunc func(*gin.Context) bool

// windowScript counts one hit and returns {hits, pttl}. The expiry is set on
// the first hit only, which makes the window fixed rather than sliding.
var windowScript = redis.NewScript(`
local hits = redis.call("INCR", KEYS[1])
if hits == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {hits, redis.call("PTTL", KEYS[1])}
`)

type windowState struct {
	hits  int
	reset int // seconds until the counter expires, rounded up
}

func hit(c *gin.Context, rdb *redis.Client, key string, window time.Duration) (windowState, error) {
	res, err := windowScript.Run(c.Request.Context(), rdb, []string{key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return windowState{}, err
	}
	st := windowState{}
	if len(res) > 0 {
		st.hits = int(res[0])
	}
	if len(res) > 1 && res[1] > 0 {
		st.reset = int((time.Duration(res[1])*time.Millisecond + time.Second - 1) / time.Second)
	}
	return st, nil
}

// RateLimit allows budget requests per key per window, counted in Redis. A nil
// client turns it off; a Redis error lets the request through unmetered.
// CORS preflights are never counted.
func RateLimit(rdb *redis.Client, budget int, window time.Duration, keyFn KeyFunc, allow AllowFunc) gin.HandlerFunc {
	if rdb == nil || budget <= 0 || window <= 0 || keyFn == nil {
		return func(c *gin.Context) { c.Next() }
	}
	limit := strconv.Itoa(budget)
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || (allow != nil && allow(c)) {
			c.Next()
			return
		}

		st, err := hit(c, rdb, keyFn(c), window)
		if err != nil {
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", limit)
		c.Header("X-RateLimit-Remaining", strconv.Itoa(max(0, budget-st.hits)))
		c.Header("X-RateLimit-Reset", strconv.Itoa(st.reset))
		if st.hits <= budget {
			c.Next()
			return
		}
		if st.reset > 0 {
			c.Header("Retry-After", strconv.Itoa(st.reset))
		}
		response.Abort(c, http.StatusTooManyRequests, "rate limit exceeded", nil)
	}
}

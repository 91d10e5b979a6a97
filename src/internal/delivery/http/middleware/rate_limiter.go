package middleware

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	httpError "transfer-service/src/pkg/http-error"
	"transfer-service/src/pkg/log"
	"transfer-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"github.com/ulule/limiter/v3"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
)

// Endpoint classes. Booking creation is throttled harder than reads.
const (
	ClassBooking = "BOOKING"
	ClassGeneral = "GENERAL"
)

var defaultRates = map[string]string{
	ClassBooking: "10-1m",
	ClassGeneral: "60-1m",
}

// ParseCustomRate allows formats like "10-1m", "30-20m", "5-1h", "20-10s".
func ParseCustomRate(rateStr string) (limiter.Rate, error) {
	parts := strings.Split(rateStr, "-")
	if len(parts) != 2 {
		return limiter.Rate{}, fmt.Errorf("invalid rate format: %s", rateStr)
	}

	limit, err := strconv.Atoi(parts[0])
	if err != nil {
		return limiter.Rate{}, fmt.Errorf("invalid limit: %s", parts[0])
	}

	durationStr := parts[1]
	var period time.Duration

	switch {
	case strings.HasSuffix(durationStr, "s"):
		seconds, err := strconv.Atoi(strings.TrimSuffix(durationStr, "s"))
		if err != nil {
			return limiter.Rate{}, fmt.Errorf("invalid seconds duration: %v", err)
		}
		period = time.Duration(seconds) * time.Second

	case strings.HasSuffix(durationStr, "m"):
		minutes, err := strconv.Atoi(strings.TrimSuffix(durationStr, "m"))
		if err != nil {
			return limiter.Rate{}, fmt.Errorf("invalid minutes duration: %v", err)
		}
		period = time.Duration(minutes) * time.Minute

	case strings.HasSuffix(durationStr, "h"):
		hours, err := strconv.Atoi(strings.TrimSuffix(durationStr, "h"))
		if err != nil {
			return limiter.Rate{}, fmt.Errorf("invalid hours duration: %v", err)
		}
		period = time.Duration(hours) * time.Hour

	default:
		return limiter.Rate{}, fmt.Errorf("unsupported period: %s", durationStr)
	}

	return limiter.Rate{
		Period: period,
		Limit:  int64(limit),
	}, nil
}

// NewRateLimiter builds the admission gate for one endpoint class, keyed by
// client IP, counters live in redis so every instance shares them. A denial
// short-circuits before any domain logic runs. Setup failures fall back to a
// pass-through handler, throttling must never take the booking surface down.
func NewRateLimiter(v *viper.Viper, redisClient redis.UniversalClient, logger log.Log, class string) fiber.Handler {
	rateStr := v.GetString("ratelimit." + strings.ToLower(class))
	if rateStr == "" {
		rateStr = defaultRates[class]
	}

	rate, err := ParseCustomRate(rateStr)
	if err != nil {
		logger.Error("rate-limiter", fmt.Sprintf("invalid rate %q for class %s: %v", rateStr, class, err), "NewRateLimiter", "")
		return func(ctx *fiber.Ctx) error {
			return ctx.Next()
		}
	}

	store, err := redisstore.NewStoreWithOptions(redisClient, limiter.StoreOptions{
		Prefix:          fmt.Sprintf("rate_limiter:%s", class),
		MaxRetry:        3,
		CleanUpInterval: rate.Period,
	})
	if err != nil {
		logger.Error("rate-limiter", fmt.Sprintf("redis store init failed for class %s: %v", class, err), "NewRateLimiter", "")
		return func(ctx *fiber.Ctx) error {
			return ctx.Next()
		}
	}

	instance := limiter.New(store, rate)

	return func(ctx *fiber.Ctx) error {
		limiterCtx, err := instance.Get(ctx.Context(), ctx.IP())
		if err != nil {
			logger.Error("rate-limiter", "counter lookup failed: "+err.Error(), class, ctx.IP())
			return ctx.Next()
		}

		ctx.Set("X-RateLimit-Limit", strconv.FormatInt(limiterCtx.Limit, 10))
		ctx.Set("X-RateLimit-Remaining", strconv.FormatInt(limiterCtx.Remaining, 10))
		ctx.Set("X-RateLimit-Reset", strconv.FormatInt(limiterCtx.Reset, 10))

		if limiterCtx.Reached {
			retryAfter := limiterCtx.Reset - time.Now().Unix()
			if retryAfter < 0 {
				retryAfter = 0
			}
			ctx.Set("Retry-After", strconv.FormatInt(retryAfter, 10))
			return utils.ResponseError(httpError.NewTooManyRequests(), ctx)
		}

		return ctx.Next()
	}
}

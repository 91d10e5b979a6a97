package route

import (
	"transfer-service/src/internal/delivery/http"

	"github.com/gofiber/fiber/v2"
)

type RouteConfig struct {
	App                    *fiber.App
	BookingController      *http.BookingController
	ModificationController *http.ModificationController
	BookingRateLimiter     fiber.Handler
	GeneralRateLimiter     fiber.Handler
}

func (c *RouteConfig) Setup() {
	c.App.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.SendString("OK")
	})

	v1 := c.App.Group("/bookings/v1")
	v1.Post("/", c.BookingRateLimiter, c.BookingController.CreateBooking)
	v1.Get("/:code", c.GeneralRateLimiter, c.BookingController.GetBooking)
	v1.Get("/:code/modify", c.GeneralRateLimiter, c.ModificationController.CanModify)
	v1.Post("/:code/modify", c.BookingRateLimiter, c.ModificationController.ModifyBooking)
	v1.Post("/:code/cancel", c.BookingRateLimiter, c.ModificationController.CancelBooking)
}

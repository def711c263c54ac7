package gateway

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"shareit/internal/config"
	"shareit/internal/handler"
	shmw "shareit/internal/middleware"
	"shareit/internal/validation"
)

// Register wires gateway routes and middleware. Routes mirror the server's.
func Register(e *echo.Echo, cfg config.GatewayConfig, logger *zerolog.Logger, h *Handler) {
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(shmw.RequestID())
	e.Use(shmw.AccessLog(logger, "gateway"))

	e.Validator = validation.New(func() time.Time { return time.Now().UTC() })

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	limiter := shmw.NewRateLimiter(cfg.RateLimit, handler.HeaderUserID)
	api := e.Group("", limiter.Middleware())

	users := api.Group("/users")
	users.POST("", h.CreateUser)
	users.PUT("", h.ReplaceUser)
	users.GET("", h.ListUsers)
	users.GET("/:id", h.GetUser)
	users.PATCH("/:id", h.UpdateUser)
	users.DELETE("/:id", h.DeleteUser)

	items := api.Group("/items")
	items.POST("", h.CreateItem)
	items.GET("", h.ListOwnItems)
	items.GET("/search", h.SearchItems)
	items.GET("/:id", h.GetItem)
	items.PUT("/:id", h.UpdateItem)
	items.PATCH("/:id", h.UpdateItem)
	items.POST("/:id/comment", h.AddComment)

	bookings := api.Group("/bookings")
	bookings.POST("", h.CreateBooking)
	bookings.PATCH("", h.DecideFirstWaiting)
	bookings.GET("", h.ListByBooker)
	bookings.GET("/owner", h.ListByOwner)
	bookings.GET("/:id", h.GetBooking)
	bookings.PATCH("/:id", h.DecideBooking)

	requests := api.Group("/requests")
	requests.POST("", h.CreateRequest)
	requests.GET("", h.ListOwnRequests)
	requests.GET("/all", h.ListOtherRequests)
	requests.GET("/:id", h.GetRequest)
}

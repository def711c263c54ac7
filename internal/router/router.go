package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"shareit/docs"
	"shareit/internal/config"
	"shareit/internal/handler"
	shmw "shareit/internal/middleware"
	"shareit/internal/service"
	"shareit/internal/validation"
)

// Handlers groups the server tier handlers.
type Handlers struct {
	Users    *handler.UserHandler
	Items    *handler.ItemHandler
	Bookings *handler.BookingHandler
	Requests *handler.ItemRequestHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, logger *zerolog.Logger, h Handlers) {
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(shmw.RequestID())
	e.Use(shmw.AccessLog(logger, "server"))

	e.Validator = validation.New(service.UTCNow)

	if cfg.Server.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.Server.SwaggerHost
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	users := e.Group("/users")
	users.POST("", h.Users.CreateUser)
	users.PUT("", h.Users.ReplaceUser)
	users.GET("", h.Users.ListUsers)
	users.GET("/:id", h.Users.GetUser)
	users.PATCH("/:id", h.Users.UpdateUser)
	users.DELETE("/:id", h.Users.DeleteUser)

	items := e.Group("/items")
	items.POST("", h.Items.CreateItem)
	items.GET("", h.Items.ListOwnItems)
	items.GET("/search", h.Items.SearchItems)
	items.GET("/:id", h.Items.GetItem)
	items.PUT("/:id", h.Items.UpdateItem)
	items.PATCH("/:id", h.Items.UpdateItem)
	items.POST("/:id/comment", h.Items.AddComment)

	bookings := e.Group("/bookings")
	bookings.POST("", h.Bookings.CreateBooking)
	bookings.PATCH("", h.Bookings.DecideFirstWaiting)
	bookings.GET("", h.Bookings.ListByBooker)
	bookings.GET("/owner", h.Bookings.ListByOwner)
	bookings.GET("/:id", h.Bookings.GetBooking)
	bookings.PATCH("/:id", h.Bookings.DecideBooking)

	requests := e.Group("/requests")
	requests.POST("", h.Requests.CreateRequest)
	requests.GET("", h.Requests.ListOwn)
	requests.GET("/all", h.Requests.ListOthers)
	requests.GET("/:id", h.Requests.GetRequest)
}

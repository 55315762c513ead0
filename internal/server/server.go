package server

import (
	"log/slog"

	"clubsphere-server/internal/handler"
	"clubsphere-server/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	echo              *echo.Echo
	paymentHandler    *handler.PaymentHandler
	membershipHandler *handler.MembershipHandler
	eventHandler      *handler.EventHandler
	clubHandler       *handler.ClubHandler
	userHandler       *handler.UserHandler
}

func NewServer(
	paymentService service.PaymentService,
	membershipService service.MembershipService,
	eventService service.EventService,
	clubService service.ClubService,
	userService service.UserService,
) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogError:     true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"requestId", v.RequestID,
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
				slog.Error("request", attrs...)
			} else {
				slog.Info("request", attrs...)
			}
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:              e,
		paymentHandler:    handler.NewPaymentHandler(paymentService),
		membershipHandler: handler.NewMembershipHandler(membershipService),
		eventHandler:      handler.NewEventHandler(eventService),
		clubHandler:       handler.NewClubHandler(clubService),
		userHandler:       handler.NewUserHandler(userService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	api.GET("/users", s.userHandler.ListUsers)
	api.POST("/users", s.userHandler.CreateUser)
	api.GET("/users/:email", s.userHandler.GetUser)
	api.PATCH("/users/:email", s.userHandler.UpdateUser)

	api.GET("/clubs", s.clubHandler.ListClubs)
	api.GET("/clubs/:id", s.clubHandler.GetClub)

	api.GET("/events", s.eventHandler.ListEvents)
	api.GET("/events/:id", s.eventHandler.GetEvent)
	api.POST("/event-registrations", s.eventHandler.Register)
	api.GET("/event-registrations/check", s.eventHandler.CheckRegistration)

	api.POST("/memberships", s.membershipHandler.AddMembership)
	api.GET("/memberships", s.membershipHandler.MembershipsByMember)
	api.GET("/memberships/:clubId/:email", s.membershipHandler.MembershipByClubAndMember)

	// -------- payments --------
	payments := api.Group("/payments")
	payments.GET("", s.paymentHandler.PaymentsByMember)
	payments.POST("/checkout", s.paymentHandler.InitiateCheckout)
	// Stripe success redirect lands here with ?session_id=
	payments.GET("/confirm", s.paymentHandler.ConfirmPayment)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}

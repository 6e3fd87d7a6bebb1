package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/iSamBa/gym-manager-sub000/internal/booking"
	"github.com/iSamBa/gym-manager-sub000/internal/config"
	"github.com/iSamBa/gym-manager-sub000/internal/machine"
	"github.com/iSamBa/gym-manager-sub000/internal/member"
	"github.com/iSamBa/gym-manager-sub000/internal/notify"
	"github.com/iSamBa/gym-manager-sub000/internal/session"
	"github.com/iSamBa/gym-manager-sub000/internal/settings"
	"github.com/iSamBa/gym-manager-sub000/internal/trainer"
)

// settingsTTL bounds how stale a cached studio-settings row may be.
const settingsTTL = 30 * time.Second

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
}

func New(db *sqlx.DB, cfg *config.Config, notifier *notify.Service) *Server {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		RequestLoggingMiddleware(),
		MetricsMiddleware(),
		corsMiddleware(),
		RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	loc := cfg.Location()

	machineRepo := machine.NewRepository(db)
	trainerRepo := trainer.NewRepository(db)
	memberRepo := member.NewRepository(db)
	sessionRepo := session.NewRepository(db)
	membershipRepo := booking.NewRepository(db)
	settingsService := settings.NewService(settings.NewRepository(db), settingsTTL)

	availability := session.NewService(sessionRepo)
	validator := booking.NewValidator(availability, sessionRepo, trainerRepo, settingsService, loc)
	occupancy := booking.NewMaintainer(membershipRepo)

	// A typed nil must not reach the interface field: the coordinator
	// treats a nil Notifier as "notifications disabled".
	var bookingNotifier booking.Notifier
	if notifier != nil {
		bookingNotifier = notifier
	}

	bookingService := booking.NewService(
		db,
		sessionRepo,
		membershipRepo,
		occupancy,
		validator,
		machineRepo,
		memberRepo,
		bookingNotifier,
		loc,
		cfg.BookingTimeout,
	)

	sessionHandler := session.NewHandler(availability)
	bookingHandler := booking.NewHandler(bookingService)
	machineHandler := machine.NewHandler(machineRepo)
	trainerHandler := trainer.NewHandler(trainerRepo)
	memberHandler := member.NewHandler(memberRepo)
	analyticsHandler := session.NewAnalyticsHandler(session.NewAnalyticsRepository(db))

	router.GET("/sessions", sessionHandler.ListSessions)
	router.GET("/sessions/:sessionID", sessionHandler.GetSession)
	router.POST("/sessions", bookingHandler.CreateSession)
	router.POST("/sessions/validate", bookingHandler.ValidateSession)
	router.POST("/sessions/:sessionID/cancel", bookingHandler.CancelSession)
	router.POST("/memberships/:membershipID/status", bookingHandler.UpdateMembershipStatus)
	router.POST("/memberships/:membershipID/cancel", bookingHandler.CancelMembership)
	router.POST("/memberships/:membershipID/attended", bookingHandler.MarkAttended)
	router.POST("/memberships/:membershipID/no-show", bookingHandler.MarkNoShow)
	router.GET("/machines", machineHandler.ListMachines)
	router.GET("/trainers", trainerHandler.ListTrainers)
	router.GET("/members/:memberID", memberHandler.GetMember)
	router.GET("/stats/sessions/daily", analyticsHandler.StatsByDay)
	router.GET("/stats/sessions/machines", analyticsHandler.StatsByMachine)

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.http.ListenAndServe()
}

// Handler exposes the routing tree for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/manas360/manas360/internal/config"
	"github.com/manas360/manas360/internal/domain/booking"
	"github.com/manas360/manas360/internal/domain/patient"
	"github.com/manas360/manas360/internal/domain/triage"
	"github.com/manas360/manas360/internal/platform/middleware"
)

// PatientRegistrarAdapter adapts the patient service to the
// triage.PatientRegistrar interface, avoiding circular imports between the
// triage and patient packages.
type PatientRegistrarAdapter struct {
	svc *patient.Service
}

// RegisterPatient implements triage.PatientRegistrar.
func (a *PatientRegistrarAdapter) RegisterPatient(ctx context.Context, name string, score float64, answers map[string]int) (uuid.UUID, error) {
	r, err := a.svc.Register(ctx, name, score, answers)
	if err != nil {
		return uuid.Nil, err
	}
	return r.ID, nil
}

// PatientDirectoryAdapter adapts the patient service to the
// booking.PatientDirectory interface.
type PatientDirectoryAdapter struct {
	svc *patient.Service
}

// FindPatient implements booking.PatientDirectory.
func (a *PatientDirectoryAdapter) FindPatient(ctx context.Context, id uuid.UUID) (*booking.PatientInfo, error) {
	r, err := a.svc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &booking.PatientInfo{ID: r.ID, Name: r.Name}, nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "manas-server",
		Short: "MANAS360 triage and booking API server",
	}

	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Content-Type", "X-Request-ID"},
	}))

	// API group
	apiV1 := e.Group("/api/v1")

	// Patient registry
	patientRepo := patient.NewMemRepository()
	patientSvc := patient.NewService(patientRepo)
	patientHandler := patient.NewHandler(patientSvc)
	patientHandler.RegisterRoutes(apiV1)

	// Triage assessment flow; completed assessments register patients.
	triageMgr := triage.NewManager(&PatientRegistrarAdapter{svc: patientSvc})
	triageHandler := triage.NewHandler(triageMgr)
	triageHandler.RegisterRoutes(apiV1)

	// Booking flow and appointment registry
	apptRepo := booking.NewMemRepository()
	bookingSvc := booking.NewService(apptRepo, &PatientDirectoryAdapter{svc: patientSvc})
	bookingHandler := booking.NewHandler(bookingSvc)
	bookingHandler.RegisterRoutes(apiV1)

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}

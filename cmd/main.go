package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	calendarpb "github.com/Leganyst/trainer-booking/internal/api/calendar/v1"
	"github.com/Leganyst/trainer-booking/internal/auth"
	"github.com/Leganyst/trainer-booking/internal/config"
	"github.com/Leganyst/trainer-booking/internal/db"
	"github.com/Leganyst/trainer-booking/internal/httpapi"
	"github.com/Leganyst/trainer-booking/internal/model"
	"github.com/Leganyst/trainer-booking/internal/repository"
	"github.com/Leganyst/trainer-booking/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// 1. Конфиг процесса (YAML + env) и конфиг БД из env.
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yml"
	}
	// До чтения конфига уровня логирования ещё нет.
	boot := zerolog.New(os.Stderr).With().Timestamp().Logger()
	appCfg, err := config.LoadAppConfig(configPath)
	if err != nil {
		boot.Fatal().Err(err).Msg("load app config")
	}
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		boot.Fatal().Err(err).Msg("load db config")
	}

	logger := newLogger(appCfg.Log)

	// 2. Подключаемся к БД через GORM.
	gormDB, err := db.NewGormDB(dbCfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("init db")
	}

	// 3. Миграции моделей.
	if err := model.AutoMigrate(gormDB); err != nil {
		logger.Fatal().Err(err).Msg("auto migrate")
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal().Err(err).Msg("sql DB")
	}
	defer sqlDB.Close()

	// 4. Хранилище и доменные сервисы.
	store := repository.NewStore(gormDB)
	rules := service.Rules{
		Location:        appCfg.Location(),
		LockWindow:      appCfg.LockWindow,
		BookingLeadTime: appCfg.BookingLeadTime,
	}

	appointmentSvc := service.NewAppointmentService(store, rules, nil, logger)
	workHoursSvc := service.NewWorkHoursService(store, rules, logger)
	statsSvc := service.NewStatisticsService(store, rules, nil)
	identitySvc := service.NewIdentityService(store, logger)

	if email, password := os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD"); email != "" && password != "" {
		admin, err := identitySvc.EnsureAdmin(context.Background(), email, password)
		if err != nil {
			logger.Fatal().Err(err).Msg("ensure admin")
		}
		logger.Info().Str("client_id", admin.ID.String()).Msg("admin account ready")
	}

	verifier := auth.NewVerifier(appCfg.JWTSecret, store.Clients)

	// 5. gRPC-сервер: логирование, аутентификация, health, reflection.
	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(
		service.LoggingInterceptor(logger.With().Str("component", "grpc").Logger()),
		auth.UnaryServerInterceptor(verifier, "/"+calendarpb.ServiceName+"/"),
	))
	calendarpb.RegisterCalendarServiceServer(grpcServer, service.NewCalendarService(appointmentSvc, workHoursSvc, statsSvc, rules))

	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	healthSrv.SetServingStatus(calendarpb.ServiceName, healthpb.HealthCheckResponse_SERVING)
	// Сообщения CalendarService идут через JSON-кодек без proto-дескрипторов,
	// поэтому через reflection описывается только health.
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", appCfg.GRPCAddr)
	if err != nil {
		logger.Fatal().Err(err).Str("addr", appCfg.GRPCAddr).Msg("listen")
	}

	// 6. HTTP API на gin.
	gin.SetMode(gin.ReleaseMode)
	router := httpapi.NewRouter(&httpapi.Handler{
		Appointments: appointmentSvc,
		WorkHours:    workHoursSvc,
		Statistics:   statsSvc,
		Identity:     identitySvc,
		Verifier:     verifier,
		Rules:        rules,
	}, logger)
	httpServer := &http.Server{
		Addr:              appCfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// 7. Запускаем серверы в горутинах.
	go func() {
		logger.Info().Str("addr", appCfg.GRPCAddr).Msg("gRPC server listening")
		if err := grpcServer.Serve(lis); err != nil {
			logger.Fatal().Err(err).Msg("grpc serve")
		}
	}()
	go func() {
		logger.Info().Str("addr", appCfg.HTTPAddr).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http serve")
		}
	}()

	// 8. Грейсфул-шатдаун по сигналу.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info().Msg("shutting down servers...")
	healthSrv.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	grpcServer.GracefulStop()
}

func newLogger(cfg config.LogConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339

	var l zerolog.Logger
	if cfg.Pretty {
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		l = zerolog.New(os.Stdout)
	}
	return l.Level(level).With().Timestamp().Str("service", "trainer-booking").Logger()
}

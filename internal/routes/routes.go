package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"request-tracker/internal/authz"
	"request-tracker/internal/controllers"
	"request-tracker/internal/repositories"
	"request-tracker/internal/services"
	"request-tracker/pkg/config"
	"request-tracker/pkg/middleware"
	"request-tracker/pkg/service"
)

type Loggers struct {
	Main    *zap.Logger
	Auth    *zap.Logger
	Request *zap.Logger
	User    *zap.Logger
}

func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, loggers *Loggers, cfg *config.Config) {
	loggers.Main.Info("InitRouter: Начало создания маршрутов")

	api := e.Group("/api")

	txManager := repositories.NewTxManager(dbConn)
	gate := authz.NewGate()

	userRepo := repositories.NewUserRepository(dbConn, loggers.User)
	requestRepo := repositories.NewRequestRepository(dbConn, loggers.Request)
	messageRepo := repositories.NewMessageRepository(dbConn, loggers.Request)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	authService := services.NewAuthService(userRepo, cacheRepo, jwtSvc, loggers.Auth, &cfg.Auth)
	userService := services.NewUserService(userRepo, gate, loggers.User)
	requestService := services.NewRequestService(txManager, requestRepo, messageRepo, gate, loggers.Request)
	messageService := services.NewMessageService(txManager, requestRepo, messageRepo, gate, loggers.Request)
	reportService := services.NewReportService(requestRepo, gate, loggers.Main)

	authCtrl := controllers.NewAuthController(authService, loggers.Auth)
	userCtrl := controllers.NewUserController(userService, loggers.User)
	requestCtrl := controllers.NewRequestController(requestService, loggers.Request)
	messageCtrl := controllers.NewMessageController(messageService, loggers.Request)
	reportCtrl := controllers.NewReportController(reportService, loggers.Main)

	authMW := middleware.NewAuthMiddleware(jwtSvc, userRepo, loggers.Auth)
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, authCtrl)
	runUserRouter(secureGroup, userCtrl)
	runRequestRouter(secureGroup, requestCtrl, messageCtrl)
	runReportRouter(secureGroup, reportCtrl)

	loggers.Main.Info("InitRouter: Маршруты созданы")
}

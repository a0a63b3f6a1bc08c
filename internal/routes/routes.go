package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"deltica/internal/controllers"
	"deltica/internal/repositories"
	"deltica/internal/services"
	"deltica/pkg/clock"
	"deltica/pkg/config"
	"deltica/pkg/filestorage"
)

// InitRouter собирает весь граф зависимостей и регистрирует маршруты.
func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, logger *zap.Logger, cfg *config.Config) {
	logger.Info("InitRouter: начало создания маршрутов")

	api := e.Group("/api")

	fileStorage, err := filestorage.NewLocalFileStorage(cfg.Upload.BasePath)
	if err != nil {
		logger.Fatal("не удалось создать файловое хранилище", zap.Error(err))
	}
	txManager := repositories.NewTxManager(dbConn)
	clk := clock.New()

	// --- РЕПОЗИТОРИИ ---
	registryRepo := repositories.NewRegistryRepository(dbConn)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn)
	verificationRepo := repositories.NewVerificationRepository(dbConn)
	responsibilityRepo := repositories.NewResponsibilityRepository(dbConn)
	financeRepo := repositories.NewFinanceRepository(dbConn)
	fileRepo := repositories.NewEquipmentFileRepository(dbConn)
	archiveRepo := repositories.NewArchiveRepository(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// --- СЕРВИСЫ ---
	mainTableService := services.NewMainTableService(
		registryRepo, equipmentRepo, verificationRepo, responsibilityRepo,
		financeRepo, fileRepo, cacheRepo, txManager, fileStorage, clk,
		cfg.Cache.RegistryTTL, logger,
	)
	archiveService := services.NewArchiveService(
		archiveRepo, equipmentRepo, verificationRepo, responsibilityRepo,
		financeRepo, fileRepo, cacheRepo, txManager, fileStorage, clk, logger,
	)
	attachmentService := services.NewAttachmentService(fileRepo, equipmentRepo, fileStorage, logger)

	// --- КОНТРОЛЛЕРЫ ---
	mainTableCtrl := controllers.NewMainTableController(mainTableService, logger)
	archiveCtrl := controllers.NewArchiveController(archiveService, logger)
	attachmentCtrl := controllers.NewAttachmentController(attachmentService, cfg.Upload.MaxFileSize, logger)
	reportCtrl := controllers.NewReportController(mainTableService, logger)

	// --- МАРШРУТЫ ---
	mainTable := api.Group("/main-table")
	mainTable.GET("", mainTableCtrl.GetAll)
	mainTable.GET("/:id", mainTableCtrl.GetByID)
	mainTable.GET("/:id/full", mainTableCtrl.GetFullByID)
	mainTable.POST("", mainTableCtrl.Create)
	mainTable.PUT("/:id", mainTableCtrl.Update)
	mainTable.DELETE("/:id", mainTableCtrl.Delete)

	archive := api.Group("/archive")
	archive.GET("", archiveCtrl.GetAll)
	archive.GET("/:id", archiveCtrl.GetByID)
	archive.GET("/:id/full", archiveCtrl.GetFullByID)
	archive.POST("/:id", archiveCtrl.Archive)
	archive.POST("/:id/restore", archiveCtrl.Restore)
	archive.PATCH("/:id/reason", archiveCtrl.UpdateReason)
	archive.DELETE("/:id", archiveCtrl.Delete)

	files := api.Group("/main-table/:id/files")
	files.GET("", attachmentCtrl.List)
	files.POST("", attachmentCtrl.Upload)
	api.DELETE("/files/:id", attachmentCtrl.Delete)

	api.GET("/reports/registry", reportCtrl.ExportRegistry)

	logger.Info("InitRouter: маршруты зарегистрированы")
}

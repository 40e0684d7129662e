package main

import (
	"context"
	"fmt"
	"medicalcv-service/internal/app/config"
	"medicalcv-service/internal/app/contracts"
	"medicalcv-service/internal/app/delivery/http/controllers"
	"medicalcv-service/internal/app/delivery/http/middlewares"
	"medicalcv-service/internal/app/delivery/http/routers"
	"medicalcv-service/internal/app/drivers/database"
	"medicalcv-service/internal/app/drivers/logger"
	"medicalcv-service/internal/app/drivers/messaging"
	"medicalcv-service/internal/app/drivers/storage"
	"medicalcv-service/internal/app/models"
	"medicalcv-service/internal/app/services/backend"
	"medicalcv-service/internal/app/services/core/listing"
	"medicalcv-service/internal/app/services/core/session"
	"medicalcv-service/internal/app/services/core/workspace"
	"medicalcv-service/internal/app/services/shared/audit"
	"medicalcv-service/internal/app/services/shared/events"
	"medicalcv-service/internal/app/services/shared/jwtmanager"
	"medicalcv-service/internal/app/services/shared/ratelimiter"
	"medicalcv-service/internal/app/services/shared/redis"
	sharedStorage "medicalcv-service/internal/app/services/shared/storage"
	"medicalcv-service/internal/pkg/constvars"
	"medicalcv-service/internal/pkg/dto/requests"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Version sets the default build version
var Version = "develop"

// Tag sets the default latest commit tag
var Tag = "0.0.1-rc"

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)
	log.Info("Starting medicalcv-service",
		zap.String("version", Version),
		zap.String("tag", Tag),
		zap.String("env", internalConfig.App.Env),
	)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatal("Error loading location", zap.Error(err))
	}
	time.Local = location

	mongoDB := database.NewMongoDB(driverConfig, internalConfig.MongoDB.DbName)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig, internalConfig.Minio.BucketName)
	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		Minio:          minioClient,
		RabbitMQ:       rabbitMQ,
		Logger:         log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	err = bootstrapingTheApp(bootstrap)
	if err != nil {
		log.Fatal("Error bootstraping the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", internalConfig.App.Port),
		Handler: chiRouter,
	}

	go func() {
		log.Info("Server listening", zap.String("port", internalConfig.App.Port))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	// Shutdown the server
	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Error closing drivers", zap.Error(err))
	}

	fmt.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	cfg := bootstrap.InternalConfig
	log := bootstrap.Logger

	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	sessionStore := session.NewSessionStore(
		redisRepository,
		time.Duration(cfg.App.SessionExpiredTimeInHours)*time.Hour,
	)

	// Backend
	backendClient := backend.NewClient(
		cfg.Backend.BaseUrl,
		time.Duration(cfg.Backend.RequestTimeoutInSeconds)*time.Second,
		log,
	)
	authGateway := backend.NewAuthGateway(backendClient)

	// Mutation observers
	auditRepository := audit.NewAuditMongoRepository(bootstrap.MongoDB, cfg.MongoDB.AuditCollection)
	publisher, err := events.NewPublisher(bootstrap.RabbitMQ, log, cfg.RabbitMQ.MutationQueue)
	if err != nil {
		return err
	}
	observers := []contracts.MutationObserver{
		audit.NewAuditObserver(auditRepository, log),
		events.NewMutationObserver(publisher, cfg.RabbitMQ.MutationQueue, log),
	}

	// Workspaces
	registry := workspace.NewRegistry(&workspace.Dependencies{
		Client:         backendClient,
		Auth:           authGateway,
		Sessions:       sessionStore,
		LoginLimiter:   ratelimiter.NewKeyedLimiter(cfg.App.LoginAttemptsPerMinute, time.Minute),
		Observers:      observers,
		Storage:        sharedStorage.NewMinioStorage(bootstrap.Minio),
		Audit:          auditRepository,
		BucketName:     cfg.Minio.BucketName,
		DownloadExpiry: time.Duration(cfg.Minio.PreSignedUrlObjectExpiryInHours) * time.Hour,
		PageSize:       cfg.Backend.PageSize,
		Log:            log,
	}, time.Duration(cfg.App.WorkspaceIdleTimeInMinutes)*time.Minute)
	bootstrap.WorkspaceStop = registry.StartSweeper(time.Minute)

	// JWT
	jwtManager := jwtmanager.NewJWTManager(cfg, log)

	// Middlewares
	middlewares := middlewares.NewMiddlewares(log, cfg, jwtManager, registry)

	// Controllers
	timeout := cfg.App.RequestTimeoutInSeconds
	ctrls := &routers.Controllers{
		Auth:          controllers.NewAuthController(log, registry, jwtManager, timeout),
		Dashboard:     controllers.NewDashboardController(log, timeout),
		Confirmation:  controllers.NewConfirmationController(log, timeout),
		MedicalRecord: controllers.NewMedicalRecordController(log, timeout, cfg.Minio.AttachmentMaxUploadSizeInMB),
		Institutions: controllers.NewResourceController[models.Institution, requests.Institution](
			log, constvars.ResourceInstitutions, []string{listing.CategoryInstitutionType}, timeout,
			func(ws *workspace.Workspace) *listing.Controller[models.Institution] { return ws.Institutions },
		),
		Doctors: controllers.NewResourceController[models.Doctor, requests.Doctor](
			log, constvars.ResourceDoctors, []string{listing.CategorySpecialization}, timeout,
			func(ws *workspace.Workspace) *listing.Controller[models.Doctor] { return ws.Doctors },
		),
		Patients: controllers.NewResourceController[models.Patient, requests.Patient](
			log, constvars.ResourcePatients, []string{listing.CategoryGender, listing.CategoryBloodType}, timeout,
			func(ws *workspace.Workspace) *listing.Controller[models.Patient] { return ws.Patients },
		),
		MedicalRecords: controllers.NewResourceController[models.MedicalRecord, requests.MedicalRecord](
			log, constvars.ResourceMedicalRecords, []string{listing.CategoryVisitType}, timeout,
			func(ws *workspace.Workspace) *listing.Controller[models.MedicalRecord] { return ws.MedicalRecords },
		),
		Users: controllers.NewResourceController[models.User, requests.User](
			log, constvars.ResourceUsers, []string{listing.CategoryRole}, timeout,
			func(ws *workspace.Workspace) *listing.Controller[models.User] { return ws.Users },
		),
	}

	routers.SetupRoutes(bootstrap.Router, cfg, middlewares, ctrls)
	return nil
}

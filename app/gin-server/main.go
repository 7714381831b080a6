package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/skillatlas/skillatlas/config"
	"github.com/skillatlas/skillatlas/internal/api/handlers"
	"github.com/skillatlas/skillatlas/internal/api/middleware"
	"github.com/skillatlas/skillatlas/internal/api/routes"
	"github.com/skillatlas/skillatlas/internal/cache"
	"github.com/skillatlas/skillatlas/internal/logger"
	"github.com/skillatlas/skillatlas/internal/models"
	"github.com/skillatlas/skillatlas/internal/providers/llm"
	mongorepo "github.com/skillatlas/skillatlas/internal/repositories/mongo"
	pgrepo "github.com/skillatlas/skillatlas/internal/repositories/postgres"
	"github.com/skillatlas/skillatlas/internal/seed"
	"github.com/skillatlas/skillatlas/internal/services"
	"github.com/skillatlas/skillatlas/internal/storage"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()
	ctx := context.Background()

	// Init PostgreSQL
	if err := config.InitPostgres(); err != nil {
		log.WithError(err).Fatal("postgres init failed")
	}
	log.Info("postgres connected")

	if err := config.PostgresDB.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.UserCV{},
		&models.Role{},
		&models.RoleSkill{},
		&models.Skill{},
		&models.UserSkill{},
		&models.SkillPrerequisite{},
		&models.LearningResource{},
		&models.Roadmap{},
		&models.ProgressRecord{},
		&models.ChatMessage{},
	); err != nil {
		log.WithError(err).Fatal("migration failed")
	}

	// Init Redis
	if err := config.InitRedis(); err != nil {
		log.WithError(err).Fatal("redis init failed")
	}
	log.Info("redis connected")

	// Init MongoDB (optional knowledge-graph mirror)
	mongoEnabled, err := config.InitMongo()
	if err != nil {
		log.WithError(err).Fatal("mongo init failed")
	}
	if mongoEnabled {
		log.Info("mongo connected")
	}

	// LLM provider
	provider, err := llm.NewVertexGemini(ctx,
		os.Getenv("GOOGLE_PROJECT_ID"),
		os.Getenv("GOOGLE_LOCATION"),
		os.Getenv("LLM_MODEL"),
	)
	if err != nil {
		log.WithError(err).Fatal("llm provider init failed")
	}
	defer provider.Close()

	// Optional CV archive bucket
	var uploader storage.Uploader
	if bucket := os.Getenv("GCS_BUCKET"); bucket != "" {
		gcs, err := storage.NewGCSUploader(ctx, bucket)
		if err != nil {
			log.WithError(err).Fatal("gcs init failed")
		}
		uploader = gcs
	}

	// Repositories
	userRepo := pgrepo.NewUserRepo(config.PostgresDB)
	sessionRepo := pgrepo.NewSessionRepo(config.PostgresDB)
	cvRepo := pgrepo.NewCVRepo(config.PostgresDB)
	roleRepo := pgrepo.NewRoleRepo(config.PostgresDB)
	skillRepo := pgrepo.NewSkillRepo(config.PostgresDB)
	roadmapRepo := pgrepo.NewRoadmapRepo(config.PostgresDB)
	progressRepo := pgrepo.NewProgressRepo(config.PostgresDB)
	chatRepo := pgrepo.NewChatRepo(config.PostgresDB)

	var graphRepo mongorepo.GraphRepository
	if mongoEnabled {
		graphRepo = mongorepo.NewGraphRepo(config.MongoDatabase)
	}

	// hourly sweep of expired sessions
	go func() {
		for range time.Tick(time.Hour) {
			n, err := sessionRepo.DeleteExpired(ctx, time.Now().UTC())
			if err != nil {
				log.WithError(err).Warn("session sweep failed")
				continue
			}
			if n > 0 {
				log.WithField("deleted", n).Debug("expired sessions removed")
			}
		}
	}()

	// Services
	authSvc := services.NewAuthService(userRepo)
	sessionSvc := services.NewSessionService(sessionRepo)
	catalogSvc := services.NewCatalogService(roleRepo, skillRepo, cache.NewRedisCache(config.RedisClient), logger.Component(log, "catalog"))

	if err := seed.Run(ctx, config.PostgresDB, catalogSvc, logger.Component(log, "seed")); err != nil {
		log.WithError(err).Fatal("catalog seeding failed")
	}
	extractionSvc := services.NewExtractionService(provider, logger.Component(log, "extraction"))
	cvSvc := services.NewCVService(cvRepo, skillRepo, extractionSvc, catalogSvc, uploader, logger.Component(log, "cv"))
	analysisSvc := services.NewAnalysisService(roleRepo, skillRepo)
	roadmapSvc := services.NewRoadmapService(provider, roleRepo, skillRepo, roadmapRepo, logger.Component(log, "roadmap"))
	progressSvc := services.NewProgressService(progressRepo, skillRepo)
	chatSvc := services.NewChatService(provider, chatRepo, skillRepo, roadmapRepo, roleRepo, logger.Component(log, "chat"))
	userSvc := services.NewUserService(skillRepo, progressRepo, cvRepo)
	graphSvc := services.NewGraphService(graphRepo, roleRepo, skillRepo, logger.Component(log, "graph"))

	// HTTP
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	routes.RegisterRoutes(r, routes.Deps{
		Sessions: sessionSvc,
		Auth:     handlers.NewAuthHandler(authSvc, sessionSvc),
		User:     handlers.NewUserHandler(userSvc),
		CV:       handlers.NewCVHandler(cvSvc, analysisSvc),
		Role:     handlers.NewRoleHandler(catalogSvc),
		Roadmap:  handlers.NewRoadmapHandler(roadmapSvc),
		Progress: handlers.NewProgressHandler(progressSvc),
		Chat:     handlers.NewChatHandler(chatSvc),
		ChatWS:   handlers.NewChatWSHandler(chatSvc, logger.Component(log, "chat_ws")),
		Graph:    handlers.NewGraphHandler(graphSvc),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

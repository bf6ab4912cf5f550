package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gourav132/Show-IT/adapters/event"
	httpAdapter "github.com/gourav132/Show-IT/adapters/http"
	"github.com/gourav132/Show-IT/adapters/media_storage"
	"github.com/gourav132/Show-IT/adapters/persistence"
	authUC "github.com/gourav132/Show-IT/internal/application/usecase/auth"
	profileUC "github.com/gourav132/Show-IT/internal/application/usecase/profile"
	projectUC "github.com/gourav132/Show-IT/internal/application/usecase/project"
	"github.com/gourav132/Show-IT/internal/builder"
	"github.com/gourav132/Show-IT/internal/config"
	"github.com/gourav132/Show-IT/pkg/auth"
	"github.com/gourav132/Show-IT/pkg/logger"
	"github.com/gourav132/Show-IT/pkg/tracing"
)

func main() {

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("Starting Show-IT API Server...")

	if cfg.Tracing.OTLPEndpoint != "" {
		tp, err := tracing.NewTracerProvider(cfg, appLogger, "show-it-api")
		if err != nil {
			appLogger.Fatal("cannot init tracing", err)
		}
		defer tp.Shutdown(context.Background())
	}

	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()

	producer, err := event.NewProducer(cfg)
	if err != nil {
		appLogger.Fatal("cannot init Kafka", err)
	}
	defer producer.Close()

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
	projectRepo := persistence.NewPostgresProjectRepo(dbPool, appLogger)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("failed to initialize uploader", err)
	}
	projectFeed := event.NewProjectFeed(redisClient, projectRepo, appLogger)

	// Use Cases
	profileUseCase := profileUC.NewProfileUseCase(profileRepo, redisClient, producer, appLogger)
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)
	registerUseCase := authUC.NewRegisterUseCase(userRepo, profileUseCase, jwtSvc, cfg.App.PublicBase, appLogger)
	createProjectUseCase := projectUC.NewCreateProjectUseCase(projectRepo, uploader, producer, projectFeed, appLogger)
	updateProjectUseCase := projectUC.NewUpdateProjectUseCase(projectRepo, uploader, producer, projectFeed, appLogger)
	deleteProjectUseCase := projectUC.NewDeleteProjectUseCase(projectRepo, uploader, producer, projectFeed, appLogger)
	listProjectsUseCase := projectUC.NewListProjectsUseCase(projectRepo)
	projectWriter := projectUC.NewWriter(createProjectUseCase, updateProjectUseCase, deleteProjectUseCase)

	// Builder sessions
	sessionManager := builder.NewManager(profileUseCase, projectWriter, projectFeed, appLogger, builder.WizardConfig{StrictJumps: true})

	// HTTP Handlers
	authHandler := httpAdapter.NewAuthHandler(loginUseCase, registerUseCase)
	profileHandler := httpAdapter.NewProfileHandler(profileUseCase)
	builderHandler := httpAdapter.NewBuilderHandler(sessionManager, appLogger)
	publicHandler := httpAdapter.NewPublicHandler(profileUseCase, listProjectsUseCase)

	// Middleware
	authMiddleware := httpAdapter.AuthMiddleware(jwtSvc)
	errorMiddleware := httpAdapter.ErrorMiddleware(appLogger)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(errorMiddleware)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		api.GET("/portfolio/:username", publicHandler.GetPortfolio)

		private := api.Group("/")
		private.Use(authMiddleware)
		{
			private.GET("/profile", profileHandler.GetMyProfile)
			private.DELETE("/session", builderHandler.CloseSession)

			b := private.Group("/builder")
			{
				b.GET("", builderHandler.State)
				b.POST("/next", builderHandler.Next)
				b.POST("/back", builderHandler.Back)
				b.POST("/jump", builderHandler.Jump)
				b.POST("/save", builderHandler.Save)

				b.PUT("/introduction", builderHandler.UpdateIntroduction)
				b.PUT("/social", builderHandler.SetSocial)
				b.PUT("/overview", builderHandler.UpdateOverview)
				b.POST("/services/toggle", builderHandler.ToggleService)

				b.POST("/skills", builderHandler.SubmitSkill)
				b.POST("/skills/:id/edit", builderHandler.BeginEditSkill)
				b.POST("/skills/delete", builderHandler.DeleteSkill)
				b.POST("/skills/cancel", builderHandler.CancelSkill)

				b.POST("/experiences", builderHandler.SubmitExperience)
				b.POST("/experiences/:id/edit", builderHandler.BeginEditExperience)
				b.POST("/experiences/delete", builderHandler.DeleteExperience)
				b.POST("/experiences/cancel", builderHandler.CancelExperience)

				b.POST("/projects", builderHandler.SubmitProject)
				b.POST("/projects/:id/edit", builderHandler.BeginEditProject)
				b.POST("/projects/delete", builderHandler.DeleteProject)
				b.POST("/projects/cancel", builderHandler.CancelProject)
			}
		}
	}

	appLogger.Info("Server running on port " + cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		appLogger.Fatal("cannot run server", err)
	}
}

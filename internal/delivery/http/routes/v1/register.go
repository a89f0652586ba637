package v1

import (
	"log"

	"workconnect/internal/config"
	"workconnect/internal/database"
	"workconnect/internal/delivery/http/handler"
	"workconnect/internal/delivery/http/middleware"
	"workconnect/internal/infrastructure/ranker"
	"workconnect/internal/pkg/jwt"
	"workconnect/internal/repository"
	"workconnect/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// Deps carries the shared infrastructure built by the container.
type Deps struct {
	Config config.Config
	DB     database.DB
	Cache  usecase.CatalogCache
	Logger *log.Logger
}

func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(deps.Config.JWT.AccessSecret)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	jobRepo := repository.NewPostgresJobRepository(deps.DB)
	appRepo := repository.NewPostgresApplicationRepository(deps.DB)
	badgeRepo := repository.NewPostgresBadgeRepository(deps.DB)
	reviewRepo := repository.NewPostgresReviewRepository(deps.DB)
	profileRepo := repository.NewPostgresProfileRepository(deps.DB)

	rankerClient := ranker.NewClient(deps.Config.AI.BaseURL, deps.Config.AI.Timeout, deps.Logger)

	badgeUC := usecase.NewBadgeEngine(badgeRepo, appRepo, reviewRepo, deps.Cache, deps.Config.Redis.TTL, deps.Logger)
	lifecycleUC := usecase.NewJobLifecycleUsecase(jobRepo, appRepo, badgeUC, deps.Logger)
	recommendationUC := usecase.NewRecommendationEngine(jobRepo, profileRepo, rankerClient, deps.Config.AI.Enabled, deps.Logger)

	jobHandler := handler.NewJobHandler(lifecycleUC)
	employerHandler := handler.NewEmployerHandler(lifecycleUC)
	workerHandler := handler.NewWorkerHandler(lifecycleUC, badgeUC)
	recommendationHandler := handler.NewRecommendationHandler(recommendationUC)
	badgeHandler := handler.NewBadgeHandler(badgeUC)

	protected := r.Group("", authMw.Middleware())

	jobsGroup := protected.Group("/jobs")
	jobHandler.RegisterRoutes(jobsGroup)

	employerGroup := protected.Group("/employer", middleware.RequireRole(middleware.RoleEmployer))
	employerHandler.RegisterRoutes(employerGroup)

	workerGroup := protected.Group("/worker", middleware.RequireRole(middleware.RoleWorker))
	workerHandler.RegisterRoutes(workerGroup)

	recommendationsGroup := protected.Group("/recommendations", middleware.RequireRole(middleware.RoleWorker))
	recommendationHandler.RegisterRoutes(recommendationsGroup)

	internalGroup := protected.Group("/internal")
	badgeHandler.RegisterRoutes(internalGroup)
}

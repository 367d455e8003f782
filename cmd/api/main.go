package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/Amieurramy/updated-back-main/docs" // swagger docs

	"github.com/Amieurramy/updated-back-main/internal/cache"
	"github.com/Amieurramy/updated-back-main/internal/config"
	"github.com/Amieurramy/updated-back-main/internal/db"
	"github.com/Amieurramy/updated-back-main/internal/handler"
	"github.com/Amieurramy/updated-back-main/internal/logging"
	"github.com/Amieurramy/updated-back-main/internal/repository"
	"github.com/Amieurramy/updated-back-main/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// @title Restaurant Recommender API
// @version 1.0
// @description Backend de restaurante con recomendaciones por factorización de matrices (Mongo, Redis)
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if err := cfg.Validate(); err != nil {
		logging.Fatal().Err(err).Msg("configuración inválida")
	}

	// Mongo y Redis
	if err := db.InitMongo(cfg); err != nil {
		logging.Fatal().Err(err).Msg("no se pudo conectar a Mongo")
	}
	if err := cache.InitRedis(cfg); err != nil {
		logging.Fatal().Err(err).Msg("no se pudo conectar a Redis")
	}

	// repos
	userRepo := repository.NewUserRepository()
	itemRepo := repository.NewMenuItemRepository()
	ratingRepo := repository.NewRatingRepository()
	recRepo := repository.NewRecommendationRepository()
	runRepo := repository.NewTrainingRunRepository()

	store := repository.NewRecsysStore(userRepo, itemRepo, ratingRepo, recRepo, logging.Component("recsys-store"))

	// services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)
	itemSvc := service.NewMenuItemService(itemRepo)
	ratingSvc := service.NewRatingService(ratingRepo, itemRepo)
	profileSvc := service.NewProfileService(userRepo, itemRepo, ratingRepo, logging.Component("profile"))
	recSvc := service.NewRecommendService(userRepo, itemRepo, recRepo, cfg.RecCacheTTL, logging.Component("recommend"))
	// coordinador: delega en los nodos ML o entrena en este proceso
	trainSvc := service.NewTrainingService(store, store, cfg.Training, runRepo, cfg.MLNodeAddrs, logging.Component("training"))
	adminMaintSvc := service.NewAdminMaintenanceService(userRepo, itemRepo, ratingRepo, runRepo)

	// handlers
	authH := handler.NewAuthHandler(authSvc)
	itemH := handler.NewMenuItemHandler(itemSvc)
	ratingH := handler.NewRatingHandler(ratingSvc)
	profileH := handler.NewProfileHandler(profileSvc)
	recH := handler.NewRecommendHandler(recSvc)
	adminMaintH := handler.NewAdminMaintenanceHandler(trainSvc, adminMaintSvc)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// =============
	// Rutas públicas
	// =============
	r.Get("/health", handler.Health(map[string]handler.Pinger{
		"mongo": db.Ping,
		"redis": cache.Ping,
	}))
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/auth/register", authH.Register)
	r.Post("/auth/login", authH.Login)

	// Carta (pública)
	r.Get("/menu-items", itemH.List)
	r.Get("/menu-items/{id}", itemH.Get)

	// ===========================
	// Rutas protegidas con JWT
	// ===========================
	authMw := handler.JWTAuth(cfg.JWTSecret)

	r.Group(func(r chi.Router) {
		r.Use(authMw)

		// ---- Endpoints /me (USER normal) ----
		r.Route("/me", func(r chi.Router) {
			r.Get("/", authH.Me)
			r.Get("/ratings", ratingH.GetMyRatings)
			r.Post("/ratings", ratingH.PostMyRating)
			r.Post("/favorites/{itemId}", profileH.AddFavorite)
			r.Delete("/favorites/{itemId}", profileH.RemoveFavorite)
			r.Put("/preferences", profileH.PutPreferences)
			r.Get("/recommendations", recH.GetMyRecommendations)
		})

		// ---- Endpoints solo ADMIN ----
		r.Group(func(r chi.Router) {
			r.Use(handler.AdminOnly())

			r.Route("/users/{id}", func(r chi.Router) {
				r.Get("/recommendations", recH.GetRecommendations)
				r.Get("/recommendations/history", recH.GetHistory)
			})

			// --- entrenamiento y cobertura del recomendador ---
			handler.MountAdminMaintenanceRoutes(r, adminMaintH)
		})
	})

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
	))

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logging.Info().
			Str("port", cfg.HTTPPort).
			Strs("ml_nodes", cfg.MLNodeAddrs).
			Msg("HTTP escuchando")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("servidor HTTP")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("apagando")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("shutdown HTTP")
	}
	if err := db.Disconnect(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("desconexión Mongo")
	}
}

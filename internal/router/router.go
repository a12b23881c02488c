package router

import (
	"database/sql"
	"net/http"

	"pet-adoption/internal/adapters/auth/introspect"
	"pet-adoption/internal/adapters/auth/jwt"
	"pet-adoption/internal/adapters/lock/redislock"
	mem "pet-adoption/internal/adapters/storage/memory"
	pg "pet-adoption/internal/adapters/storage/postgres"
	_ "pet-adoption/internal/docs"
	"pet-adoption/internal/domain/identity"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/users"
	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/config"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/metrics"
	"pet-adoption/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Config config.Config

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB
	// Opcional: si viene, las transiciones toman un lock por mascota en Redis.
	Redis redis.UniversalClient

	Logger logger.Logger
	// nil => registry propio (tests levantan varios routers en el mismo proceso).
	Registry *prometheus.Registry
}

func NewRouter(opts Options) (http.Handler, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := metrics.New(reg)
	cfg := opts.Config

	var (
		petRepo  pets.Repository
		userRepo users.Repository
	)
	if opts.DB != nil {
		petRepo = pg.NewPetsRepo(opts.DB)
		userRepo = pg.NewUsersRepo(opts.DB)
	} else {
		petRepo = mem.NewPetRepo()
		userRepo = mem.NewUserRepo()
	}

	// el emisor siempre es local; la verificación puede delegarse a un IAM externo
	signer, err := jwt.NewSigner(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL)
	if err != nil {
		return nil, err
	}
	var verifier auth.CredentialVerifier = signer
	if cfg.Introspect.URL != "" {
		v, err := introspect.NewVerifier(introspect.Config{
			BaseURL: cfg.Introspect.URL,
			APIKey:  cfg.Introspect.APIKey,
			Timeout: cfg.Introspect.Timeout,
		})
		if err != nil {
			return nil, err
		}
		verifier = v
	}

	var locker pets.Locker
	if opts.Redis != nil {
		locker = redislock.New(opts.Redis, cfg.Adoption.LockTTL)
	}

	// Services por módulo
	petsSvc := pets.NewService(petRepo, pets.Options{
		RequireScheduledVisit: cfg.Adoption.RequireScheduledVisit,
		Locker:                locker,
		Metrics:               m,
		Logger:                log.With(map[string]any{"module": "pets"}),
	})
	usersSvc := users.NewService(userRepo, signer, petsSvc, m, log.With(map[string]any{"module": "users"}))
	resolver := identity.NewResolver(verifier, users.ProfileStore(userRepo), m)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(log))
	r.Use(middleware.RequestLog(log))
	r.Use(middleware.AuthContext(resolver))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc, middleware.RateLimit(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst))
	pets.RegisterRoutes(r, petsSvc)

	return r, nil
}

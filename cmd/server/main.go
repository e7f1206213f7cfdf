package main // Entry point package

import (
	"log"

	"github.com/labstack/echo/v4"

	"github.com/tallerapp/workshop-api/internal/config"
	"github.com/tallerapp/workshop-api/internal/database"
	"github.com/tallerapp/workshop-api/internal/handler"
	"github.com/tallerapp/workshop-api/internal/middleware"
	"github.com/tallerapp/workshop-api/internal/queue"
	"github.com/tallerapp/workshop-api/internal/repository"
	"github.com/tallerapp/workshop-api/internal/router"
)

func main() {
	cfg := config.Load() // Load environment config (.env first, then env vars)

	// Open the local database, apply the schema and the seed rows. The
	// seed is INSERT OR IGNORE, so restarting never duplicates data.
	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if err := database.EnsureSchema(db); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}
	if err := database.Seed(db, cfg.BcryptCost); err != nil {
		log.Fatalf("seed database: %v", err)
	}

	// Repositories.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	advisors := repository.NewAdvisorRepo(db)
	parts := repository.NewPartRepo(db)
	vehicles := repository.NewVehicleRepo(db)
	orders := repository.NewWorkOrderRepo(db)
	orderParts := repository.NewWorkOrderPartRepo(db)

	// Handlers.
	auth := handler.NewAuthHandler(cfg, users, tokens)
	workshop := handler.NewWorkshopHandler(orders, orderParts, parts, vehicles, advisors)
	nav := handler.NewNavHandler(orders, parts, advisors)
	auth.OnLogout = nav.Teardown // logout drops the session's view state
	styles := handler.NewStylesHandler(cfg.StylePath)

	// Redis is optional: without it the cache and rate limiter become
	// pass-throughs, which suits a single-machine install.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, cache and rate limiting disabled")
	}
	extra := []echo.MiddlewareFunc{
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
	}

	// The consumer writes part-status events to the workshop log. It
	// only starts when a broker URL is configured.
	if queue.BrokerURL() != "" {
		go func() {
			if err := queue.StartPartStatusConsumer(); err != nil {
				log.Printf("part status consumer stopped: %v", err)
			}
		}()
	}

	e := echo.New()
	router.RegisterRoutes(e, styles)
	router.RegisterAuth(e, auth, cfg.JWTSecret)
	router.RegisterWorkshop(e, workshop, cfg.JWTSecret, extra...)
	router.RegisterNavigation(e, nav, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, db=%s)", addr, cfg.Env, cfg.DBPath)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

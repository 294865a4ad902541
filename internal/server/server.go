package server

import (
	"backend-trailjournal/internal/auth"
	"backend-trailjournal/internal/config"
	"backend-trailjournal/internal/gpx"
	"backend-trailjournal/internal/photo"
	"backend-trailjournal/internal/stream"
	"backend-trailjournal/internal/timeline"
	"backend-trailjournal/internal/trip"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App   *fiber.App
	Cfg   config.Config
	DB    *pgxpool.Pool
	Redis *redis.Client
	Hub   *stream.Hub
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:   app,
		Cfg:   cfg,
		DB:    db,
		Redis: redisClient,
		Hub:   stream.NewHub(redisClient),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	files := gpx.NewStore(s.Cfg.GPXTempDir)
	tripSvc := trip.NewService(s.DB, files)
	photoSvc := photo.NewService(s.DB, s.Hub)

	trip.RegisterRoutes(s.App.Group("/trips"), tripSvc, jwtMiddleware)
	photo.RegisterRoutes(s.App.Group("/trips/:tripID/photos"), photoSvc, jwtMiddleware)
	gpx.RegisterRoutes(s.App.Group("/gpx"), files, jwtMiddleware)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Hub)

	// the merged chronological view over photos and plan checkpoints
	s.App.Get("/trips/:id/timeline", func(c *fiber.Ctx) error {
		id := c.Params("id")
		photos, err := photoSvc.List(c.Context(), id)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		checkpoints, err := tripSvc.Checkpoints(c.Context(), id)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		merged := timeline.Merge(photo.TimelineItems(photos), trip.TimelineItems(checkpoints))
		return c.JSON(merged)
	})
}

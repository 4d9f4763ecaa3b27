package server

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"docqa/app/agent"
	"docqa/app/api"
	"docqa/ingest"
	"docqa/model"
	"docqa/search"
	"docqa/store"
	"docqa/types"
)

var config = fiber.Config{
	ErrorHandler: api.ErrorHandler,
}

type Server struct {
	cfg    types.Config
	logger *slog.Logger
}

func NewServer(cfg types.Config) *Server {
	return &Server{
		cfg:    cfg,
		logger: slog.Default(),
	}
}

func (s *Server) Stop() {
	s.logger.Info("server stopped")
}

func (s *Server) Run() {
	ctx := context.Background()
	pool, err := store.NewPostgresStore(ctx, postgresConnStr(), s.cfg.EmbeddingDim)
	if err != nil {
		log.Fatal("error connecting to Postgres database: ", err)
		return
	}

	if err := pool.Init(ctx); err != nil {
		log.Fatal("error creating tables: ", err)
		return
	}

	// Provider handles are built once and shared by every request.
	embedder := model.NewOllamaEmbedder()
	llm := agent.NewOllamaAgent()
	pipeline := search.NewPipeline(pool, embedder, llm, s.cfg.RetrievalLimit)
	ingestService := ingest.NewService(pool, embedder)
	source := ingest.NewDirSource(s.cfg.SourceDir)

	var (
		app           = fiber.New(config)
		checkHandler  = api.NewCheckHandler()
		queryHandler  = api.NewQueryHandler(pipeline)
		ingestHandler = api.NewIngestHandler(ingestService, source, s.cfg.SourceDir)
		check         = app.Group("/check")
		apiv1         = app.Group("/api/v1")
	)

	check.Get("/healthy", checkHandler.HandleHealthy)
	apiv1.Post("/query", queryHandler.HandleQuery)
	apiv1.Get("/query", queryHandler.HandleQuery)
	apiv1.Post("/ingest", ingestHandler.HandleIngest)
	apiv1.Post("/upload", ingestHandler.HandleUpload)

	if err := app.Listen(s.cfg.ListenAddr); err != nil {
		s.logger.Error("error starting server", "error", err.Error())
	}
}

func postgresConnStr() string {
	port, _ := strconv.Atoi(os.Getenv("PG_PORT"))
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		os.Getenv("PG_HOST"), port, os.Getenv("PG_USER"), os.Getenv("PG_PASS"), os.Getenv("PG_DB_NAME"))
}

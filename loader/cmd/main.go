package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"docqa/ingest"
	"docqa/loader/service"
	"docqa/model"
	"docqa/store"
	"docqa/types"
)

func init() {
	mustLoadEnvVariables()
}

func main() {
	ctx := context.Background()
	cfg := types.ConfigFromEnv()

	port, _ := strconv.Atoi(os.Getenv("PG_PORT"))
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		os.Getenv("PG_HOST"), port, os.Getenv("PG_USER"), os.Getenv("PG_PASS"), os.Getenv("PG_DB_NAME"))
	pool, err := store.NewPostgresStore(ctx, connStr, cfg.EmbeddingDim)
	if err != nil {
		log.Fatal("error connecting to Postgres database: ", err)
		return
	}

	if err := pool.Init(ctx); err != nil {
		log.Fatal("error creating tables: ", err)
		return
	}

	ingestor := ingest.NewService(pool, model.NewOllamaEmbedder())
	service.New(cfg, ingestor).Run()

	log.Println("Closing database connection pool...")
	if err := pool.Close(); err != nil {
		log.Printf("error closing pool: %v", err)
	}
}

func mustLoadEnvVariables() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}
}

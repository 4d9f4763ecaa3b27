package types

import (
	"os"
	"strconv"
	"time"
)

// Config carries process-level settings read from the environment.
type Config struct {
	ListenAddr     string
	SourceDir      string
	ArchiveDir     string
	BadDir         string
	MonitoringTime time.Duration
	RetrievalLimit int
	EmbeddingDim   int
}

// ConfigFromEnv reads configuration from the environment. Every field
// has a usable default when the variable is unset.
func ConfigFromEnv() Config {
	return Config{
		ListenAddr:     envStr("SERVER_ADDR", ":3000"),
		SourceDir:      envStr("LOADER_SOURCE_DIR", "./data/source"),
		ArchiveDir:     envStr("LOADER_ARCHIVE_DIR", "./data/archive"),
		BadDir:         envStr("LOADER_BAD_DIR", "./data/bad"),
		MonitoringTime: time.Duration(envInt("LOADER_MONITORING_TIME", 3)) * time.Second,
		RetrievalLimit: envInt("RETRIEVAL_LIMIT", 10),
		EmbeddingDim:   envInt("EMBEDDING_DIM", 1536),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

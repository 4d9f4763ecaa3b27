// Package service watches the upload directory and feeds newly
// settled files through ingestion, one document at a time.
package service

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"docqa/ingest"
	"docqa/types"
)

type Service struct {
	logger   *slog.Logger
	cfg      types.Config
	ingestor *ingest.Service
	source   ingest.ObjectSource

	fileMutex       sync.Mutex
	fileFirstSeen   map[string]time.Time
	filesProcessing map[string]bool
}

func New(cfg types.Config, ingestor *ingest.Service) *Service {
	createDirectories(cfg.SourceDir, cfg.ArchiveDir, cfg.BadDir)
	return &Service{
		logger:          slog.Default(),
		cfg:             cfg,
		ingestor:        ingestor,
		source:          ingest.NewDirSource(cfg.SourceDir),
		fileFirstSeen:   make(map[string]time.Time),
		filesProcessing: make(map[string]bool),
	}
}

func (s *Service) Stop() {
	s.logger.Info("loader service stopped")
}

func (s *Service) Run() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fileChan := make(chan string, 10)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(fileChan)
		s.watchFiles(ctx, fileChan)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.processFiles(ctx, fileChan)
	}()

	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)

	<-sigch
	log.Println("Received shutdown signal, shutting down gracefully...")

	cancel()
	signal.Stop(sigch)
	close(sigch)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("All goroutines stopped successfully")
	case <-shutdownCtx.Done():
		log.Println("Timeout waiting for goroutines to stop, forcing shutdown...")
	}

	s.Stop()
}

// watchFiles polls the upload directory and emits a file once it has
// sat unmodified past the settle window.
func (s *Service) watchFiles(ctx context.Context, fileChan chan<- string) {
	s.logger.Info("monitoring upload directory", "dir", s.cfg.SourceDir)

	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("stopping file watcher")
			return
		case <-ticker.C:
			files, err := os.ReadDir(s.cfg.SourceDir)
			if err != nil {
				log.Printf("error reading upload directory: %v", err)
				continue
			}

			for _, file := range files {
				if file.IsDir() {
					continue
				}
				key := file.Name()

				s.fileMutex.Lock()
				if s.filesProcessing[key] {
					s.fileMutex.Unlock()
					continue
				}
				firstSeen, known := s.fileFirstSeen[key]
				if !known {
					s.fileFirstSeen[key] = time.Now()
					s.logger.Info("new file detected", "key", key)
					s.fileMutex.Unlock()
					continue
				}
				s.fileMutex.Unlock()

				if time.Since(firstSeen) < s.cfg.MonitoringTime {
					continue
				}

				s.fileMutex.Lock()
				s.filesProcessing[key] = true
				s.fileMutex.Unlock()

				select {
				case fileChan <- key:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

// processFiles runs ingestion for each settled file, archiving it on
// success and quarantining it on failure. One document at a time: each
// chunk embedding is a blocking provider call.
func (s *Service) processFiles(ctx context.Context, fileChan <-chan string) {
	for {
		key, ok := <-fileChan
		if !ok {
			return
		}

		resp, err := s.ingestor.Ingest(ctx, s.source, key)
		if err != nil {
			log.Printf("[LOADER] ingestion of %s failed: %v", key, err)
			s.moveFile(key, s.cfg.BadDir)
		} else {
			s.logger.Info("document ingested",
				"key", key,
				"document_id", resp.DocumentID,
				"chunks_processed", resp.ChunksProcessed,
				"chunks_failed", resp.ChunksFailed,
				"size_category", resp.SizeCategory,
			)
			s.moveFile(key, s.cfg.ArchiveDir)
		}

		s.fileMutex.Lock()
		delete(s.filesProcessing, key)
		delete(s.fileFirstSeen, key)
		s.fileMutex.Unlock()

		if ctx.Err() != nil {
			return
		}
	}
}

func (s *Service) moveFile(key, destDir string) {
	src := filepath.Join(s.cfg.SourceDir, key)
	dst := filepath.Join(destDir, key)
	if err := os.Rename(src, dst); err != nil {
		log.Printf("error moving %s to %s: %v", src, destDir, err)
	}
}

func createDirectories(dirs ...string) {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Printf("error creating directory %s: %v", dir, err)
		}
	}
}

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/baditaflorin/l"
	"github.com/valyala/fasthttp"

	stdlogger "github.com/baditaflorin/go_azstemmer/internal/adapters/logger"
	"github.com/baditaflorin/go_azstemmer/internal/adapters/source"
	"github.com/baditaflorin/go_azstemmer/internal/config"
	"github.com/baditaflorin/go_azstemmer/internal/metrics"
	"github.com/baditaflorin/go_azstemmer/pkg/stemmer"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "Path to a YAML config file (empty = environment only)")
	address := flag.String("address", "", "Listen address, overrides the config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *address != "" {
		cfg.HTTPServer.Address = *address
	}

	// Set up logger
	logger, err := createLogger(cfg.LogFile, cfg.LogJSON)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Info("Starting stemmer HTTP server",
		"address", cfg.HTTPServer.Address,
		"read_timeout", cfg.HTTPServer.ReadTimeout,
		"write_timeout", cfg.HTTPServer.WriteTimeout,
		"max_request_size", cfg.HTTPServer.MaxRequestSize,
		"concurrency", cfg.HTTPServer.Concurrency,
		"rate_limit", cfg.HTTPServer.RateLimit,
	)

	s, err := initStemmer(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize stemmer", "error", err)
		os.Exit(1)
	}

	h := newHandler(s, logger, cfg.HTTPServer.WriteTimeout)

	// Create HTTP server with fasthttp
	server := &fasthttp.Server{
		Handler:               rateLimit(h.serve, cfg.HTTPServer.RateLimit, time.Second),
		Name:                  "StemmerServer",
		ReadTimeout:           cfg.HTTPServer.ReadTimeout,
		WriteTimeout:          cfg.HTTPServer.WriteTimeout,
		MaxRequestBodySize:    cfg.HTTPServer.MaxRequestSize,
		Concurrency:           cfg.HTTPServer.Concurrency,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
	}

	// Set up graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		logger.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			logger.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	logger.Info("Server listening", "address", cfg.HTTPServer.Address)
	if err := server.ListenAndServe(cfg.HTTPServer.Address); err != nil {
		logger.Error("Server error", "error", err)
		return
	}

	<-idleConnsClosed
	logger.Info("Server stopped")
}

// initStemmer loads the lexicon and builds the stemmer described by cfg.
func initStemmer(cfg config.Config, logger l.Logger) (*stemmer.Stemmer, error) {
	src := source.NewFileSource(nil, source.WithLogger(stdlogger.FromExisting(logger)))

	lx, err := src.Lexicon(cfg.Lexicon.SnapshotPath, cfg.Lexicon.WordsPath, cfg.Lexicon.SuffixesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load lexicon: %w", err)
	}

	metrics.LexiconEntries.WithLabelValues("roots").Set(float64(lx.RootCount()))
	metrics.LexiconEntries.WithLabelValues("suffixes").Set(float64(lx.SuffixCount()))

	opts := []stemmer.Option{
		stemmer.WithLexicon(lx),
		stemmer.WithLogger(logger),
		stemmer.WithParallelism(cfg.Stemmer.Parallelism),
		stemmer.WithBatchSize(cfg.Stemmer.BatchSize),
		stemmer.WithRecursiveConversion(cfg.Stemmer.RecursiveConversion),
		stemmer.WithWarmUp(cfg.Stemmer.WarmUp),
	}
	if cfg.Stemmer.LegacyFilter {
		opts = append(opts, stemmer.WithLegacyFilter())
	}

	s, err := stemmer.New(opts...)
	if err != nil {
		return nil, err
	}

	logger.Info("Stemmer initialized successfully",
		"roots", lx.RootCount(),
		"suffixes", lx.SuffixCount(),
		"warm_up", cfg.Stemmer.WarmUp,
		"cpus", runtime.NumCPU(),
	)
	return s, nil
}

// createLogger creates and configures a logger
func createLogger(logFile string, jsonFormat bool) (l.Logger, error) {
	factory := l.NewStandardFactory()

	var output io.Writer = os.Stdout
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	}

	logger, err := factory.CreateLogger(l.Config{
		Output:      output,
		JsonFormat:  jsonFormat,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,       // 1MB
		MaxFileSize: 100 * 1024 * 1024, // 100MB
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return logger, nil
}

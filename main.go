package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"

	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/db"
	"github.com/danielhkuo/quickly-vote/ledger"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/router"
	"github.com/danielhkuo/quickly-vote/store"
)

func main() {
	var err error

	// A missing .env file is fine; real deployments set the environment directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	recordStore, closeStore, err := openStore(cfg)
	if err != nil {
		slog.Error("store setup failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	slog.Info("record spaces",
		"poll", humanize.Bytes(uint64(models.PollSpace)),
		"candidate", humanize.Bytes(uint64(models.CandidateSpace)),
		"max_voters", humanize.Comma(models.MaxVoters),
	)

	l := ledger.New(recordStore, ledger.Config{
		Namespace:    cfg.Namespace,
		PollEndFloor: cfg.PollEndFloor,
		Logger:       slog.Default(),
	})

	// Create router
	mux := router.NewRouter(l, cfg, ledger.SystemClock{})

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "store", cfg.DatabaseType, "namespace", cfg.Namespace)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// openStore builds the record store named by cfg.DatabaseType
func openStore(cfg cliparse.Config) (store.Store, func(), error) {
	if cfg.DatabaseType == "memory" {
		slog.Warn("using in-memory store; records are lost on exit")
		return store.NewMemoryStore(), func() {}, nil
	}

	dialect := db.Dialect(cfg.DatabaseType)
	conn, err := db.Open(dialect, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}

	// Create schema (tables)
	if err := db.CreateSchema(conn, dialect); err != nil {
		conn.Close()
		return nil, nil, err
	}
	slog.Info("Database schema ready", "dialect", dialect)

	return store.NewSQLStore(conn, dialect), func() { conn.Close() }, nil
}

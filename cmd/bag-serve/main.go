// Command bag-serve answers address lookups over HTTP.
//
// Usage:
//
//	bag-serve [addr]                       serve on addr (default from env)
//	bag-serve <postal code> <house number> answer one query and exit
//
// Configuration comes from BAG_ADDRESS_LOOKUP_* environment variables, with
// a .env file loaded first when present; see the config package.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	bag "github.com/tweedegolf/bag-address-lookup"
	"github.com/tweedegolf/bag-address-lookup/config"
	"github.com/tweedegolf/bag-address-lookup/database"
	"github.com/tweedegolf/bag-address-lookup/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	args := os.Args[1:]

	// Two arguments answer a single query on the command line instead of
	// serving HTTP.
	if len(args) == 2 {
		lookupOnce(cfg, args[0], args[1])
		return
	}

	logger := config.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	src, err := openSource(cfg)
	if err != nil {
		logger.Fatal("Failed to load database", zap.Error(err))
	}

	srv, err := service.New(src,
		service.WithLogger(logger),
		service.WithQuiet(cfg.Quiet),
		service.WithSuggestThreshold(cfg.SuggestThreshold),
		service.WithSuggestLimit(cfg.SuggestLimit),
	)
	if err != nil {
		logger.Fatal("Failed to create service", zap.Error(err))
	}

	addr := cfg.Addr
	if len(args) == 1 {
		addr = args[0]
	}

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("Starting address lookup service", zap.String("addr", addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start service", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}

	logger.Info("Service exited")
}

// openSource loads the database file in the configured query mode.
func openSource(cfg *config.Config) (database.Source, error) {
	if cfg.Decoded {
		return bag.OpenDecoded(cfg.DatabasePath)
	}

	return bag.Open(cfg.DatabasePath)
}

// lookupOnce prints the street and locality for one address, or exits
// nonzero when the address cannot be resolved.
func lookupOnce(cfg *config.Config, postalCode, rawNumber string) {
	houseNumber, err := strconv.ParseUint(rawNumber, 10, 32)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid house number: %s\n", rawNumber)
		os.Exit(1)
	}

	src, err := openSource(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading database: %v\n", err)
		os.Exit(1)
	}

	match, found, err := database.Lookup(src, postalCode, uint32(houseNumber))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid postal code: %s\n", postalCode)
		os.Exit(1)
	}
	if !found {
		fmt.Fprintf(os.Stderr, "No address found for %s %s\n", postalCode, rawNumber)
		os.Exit(1)
	}

	fmt.Printf("%s\n%s\n", match.Street, match.Locality)
}

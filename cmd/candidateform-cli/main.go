package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	candidateform "github.com/goliatone/go-candidateform"
	"github.com/goliatone/go-candidateform/pkg/catalog"
	"github.com/goliatone/go-candidateform/pkg/localstore"
	"github.com/goliatone/go-candidateform/pkg/renderers/tui"
)

func main() {
	// Optional .env for local runs; absence is fine.
	_ = godotenv.Load()

	var (
		storageFlag = flag.String("storage", envOr("CANDIDATEFORM_STORAGE", ""), "Path to the autosave store (defaults to the user config dir)")
		outputFlag  = flag.String("output", envOr("CANDIDATEFORM_OUTPUT", "."), "Directory for the submission artifact")
		catalogFlag = flag.String("catalog", envOr("CANDIDATEFORM_CATALOG", ""), "Optional YAML file overriding the option catalog")
		delayFlag   = flag.Duration("delay", envDurationOr("CANDIDATEFORM_DELAY", 1500*time.Millisecond), "Simulated submission latency")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	options := []candidateform.Option{
		candidateform.WithOutputDir(*outputFlag),
		candidateform.WithSubmitDelay(*delayFlag),
	}

	if *storageFlag != "" {
		store, err := localstore.New(*storageFlag)
		if err != nil {
			log.Fatalf("storage: %v", err)
		}
		options = append(options, candidateform.WithStorage(store))
	}

	if *catalogFlag != "" {
		cat, err := catalog.LoadFile(*catalogFlag)
		if err != nil {
			log.Fatalf("catalog: %v", err)
		}
		options = append(options, candidateform.WithCatalog(cat))
	}

	component, err := candidateform.New(options...)
	if err != nil {
		log.Fatalf("candidateform: %v", err)
	}

	if err := component.Run(ctx); err != nil {
		if errors.Is(err, tui.ErrAborted) || errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "aborted")
			os.Exit(1)
		}
		log.Fatalf("run: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

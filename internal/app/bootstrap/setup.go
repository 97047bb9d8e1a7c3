package bootstrap

import (
	"context"

	"github.com/charmbracelet/log"

	"heron/internal/config"
	"heron/internal/database"
	"heron/internal/ipgate"
)

func Setup() {
	config.ReadSettings()

	if _, err := database.SetupDB(); err != nil {
		log.Fatalf("failed to set up database: %v", err)
	}
	config.SetIntervals()

	if err := ipgate.LoadCache(context.Background()); err != nil {
		// Requests still pass through with an empty rule set until the
		// refresh routine manages a successful load.
		log.Error("Could not load access gate rules", "error", err)
	}

	// Routines

	go ipgate.StartRefreshRoutine(context.Background())
}

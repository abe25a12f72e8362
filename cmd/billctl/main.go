package main

import (
	"os"

	"github.com/sangkips/billdesk-api/internal/cli"
	"github.com/sangkips/billdesk-api/internal/config"
	"github.com/sangkips/billdesk-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	// logs go to stderr so command output stays machine readable
	if err := logger.Setup(logger.LogConfig{Level: cfg.Log.Level, Format: "console", Output: "stderr"}); err != nil {
		os.Exit(1)
	}

	os.Exit(cli.Execute(cfg))
}

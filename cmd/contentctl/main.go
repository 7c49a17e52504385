// Command contentctl runs pipeline operations and migrations from a shell
package main

import (
	"os"
	_ "time/tzdata"

	"github.com/event-content-pipeline/internal/app"
	"github.com/event-content-pipeline/internal/config"
	"github.com/event-content-pipeline/pkg/logger"
)

func main() {
	connect := func() (backend, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		log := logger.NewWithWriter(os.Stderr, cfg.Log.Level, cfg.Log.Format == "pretty")
		a, err := app.New(cfg, log)
		if err != nil {
			return nil, err
		}
		return a, nil
	}

	if err := newRootCmd(os.Stdout, connect).Execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

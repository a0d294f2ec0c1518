// Command lookoutd runs the lookout daemon in the foreground using the
// default configuration lookup. Most users launch the daemon through
// `lookout start`; this binary exists for service managers that want a
// dedicated daemon executable.
package main

import (
	"context"
	"flag"
	"log"

	"lookout/internal/config"
	"lookout/internal/daemonrun"
)

func main() {
	configPath := flag.String("config", "", "configuration file path")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	cfg, _, _, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	level := cfg.Logging.Level
	if *logLevel != "" {
		level = *logLevel
	}

	if err := daemonrun.Run(context.Background(), cfg, daemonrun.Options{LogLevel: level}); err != nil {
		log.Fatalf("run daemon: %v", err)
	}
}

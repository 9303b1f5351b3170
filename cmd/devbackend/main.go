package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/clearflowhq/adminconsole/internal/app"
	"github.com/clearflowhq/adminconsole/internal/config"

	log "github.com/sirupsen/logrus"
)

// main runs the stub reference backend used for local development.
func main() {
	if errRun := run(context.Background(), os.Args[1:]); errRun != nil {
		log.WithError(errRun).Error("command failed")
		os.Exit(1)
	}
}

// run parses flags, loads config, and starts the dev backend.
func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("devbackend", flag.ContinueOnError)
	cfgPath := fs.String("config", "", "config file path (or env CONFIG_PATH)")
	port := fs.Int("port", 8420, "server port")
	if errParse := fs.Parse(args); errParse != nil {
		return errParse
	}

	if *port <= 0 || *port > 65535 {
		return fmt.Errorf("invalid port: %d", *port)
	}

	appCfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}
	if strings.TrimSpace(*cfgPath) != "" {
		appCfg.ConfigPath = config.ResolveConfigPath(*cfgPath)
	}

	return app.RunDevBackend(ctx, appCfg, *port)
}

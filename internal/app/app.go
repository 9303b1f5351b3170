// Package app wires configuration, the upstream client, the resolver,
// and the HTTP engines together.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/clearflowhq/adminconsole/internal/config"
	"github.com/clearflowhq/adminconsole/internal/db"
	"github.com/clearflowhq/adminconsole/internal/devbackend"
	consoleapi "github.com/clearflowhq/adminconsole/internal/http/api/console"
	"github.com/clearflowhq/adminconsole/internal/lookupcache"
	"github.com/clearflowhq/adminconsole/internal/resolver"
	"github.com/clearflowhq/adminconsole/internal/upstream"
)

// RunServer boots the console API server.
func RunServer(ctx context.Context, cfg config.AppConfig, port int) error {
	configPath := config.ResolveConfigPath(cfg.ConfigPath)

	upstreamCfg, errUpstream := config.LoadUpstreamConfig(configPath)
	if errUpstream != nil {
		return errUpstream
	}
	resolverCfg, _ := config.LoadResolverConfig(configPath)

	client := upstream.New(upstreamCfg.BaseURL, upstreamCfg.Timeout)
	cache := lookupcache.New(resolverCfg.TTL)
	res := resolver.New(client, cache)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	consoleapi.RegisterConsoleRoutes(engine, client, res)

	log.Infof("console server starting (upstream=%s, resolver ttl=%s)", upstreamCfg.BaseURL, resolverCfg.TTL)
	return serve(ctx, engine, port)
}

// RunDevBackend boots the stub reference backend for local development.
func RunDevBackend(ctx context.Context, cfg config.AppConfig, port int) error {
	configPath := config.ResolveConfigPath(cfg.ConfigPath)

	dsn, errDSN := config.LoadDatabaseDSN(configPath)
	if errDSN != nil {
		return errDSN
	}
	conn, errOpen := db.Open(dsn)
	if errOpen != nil {
		return errOpen
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		return errMigrate
	}
	if errSeed := devbackend.Seed(conn); errSeed != nil {
		return errSeed
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	devbackend.RegisterRoutes(engine, conn)

	log.Infof("dev backend starting (dialect=%s)", db.DialectName(conn))
	return serve(ctx, engine, port)
}

// serve runs the engine until the context is cancelled.
func serve(ctx context.Context, engine *gin.Engine, port int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: engine,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if errShutdown := srv.Shutdown(shutdownCtx); errShutdown != nil {
			log.Errorf("server shutdown error: %v", errShutdown)
		}
	}()

	if errListen := srv.ListenAndServe(); errListen != nil && errListen != http.ErrServerClosed {
		return errListen
	}
	return nil
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

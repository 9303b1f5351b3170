// Package console registers the HTTP surface the admin UI talks to.
package console

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/clearflowhq/adminconsole/internal/http/api/console/handlers"
	"github.com/clearflowhq/adminconsole/internal/resolver"
	"github.com/clearflowhq/adminconsole/internal/upstream"
)

// RegisterConsoleRoutes registers console routes and handlers.
func RegisterConsoleRoutes(r *gin.Engine, client *upstream.Client, res *resolver.Resolver) {
	if r == nil || client == nil || res == nil {
		return
	}

	healthHandler := handlers.NewHealthHandler()
	r.GET("/healthz", healthHandler.Healthz)

	group := r.Group("/api/console")

	tableHandler := handlers.NewTableHandler(client, res)
	group.GET("/tables/:table/data", tableHandler.Data)

	fieldHandler := handlers.NewFieldHandler(res)
	group.GET("/fields", fieldHandler.List)
	group.GET("/fields/:field/options", fieldHandler.Options)

	cacheHandler := handlers.NewCacheHandler(res)
	group.POST("/cache/clear", cacheHandler.Clear)
}

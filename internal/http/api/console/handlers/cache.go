package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clearflowhq/adminconsole/internal/resolver"
)

// CacheHandler exposes resolver cache controls.
type CacheHandler struct {
	res *resolver.Resolver
}

// NewCacheHandler constructs a CacheHandler.
func NewCacheHandler(res *resolver.Resolver) *CacheHandler {
	return &CacheHandler{res: res}
}

// Clear drops every memoized label so the next page render re-fetches.
// Operators call this after editing reference data directly upstream.
func (h *CacheHandler) Clear(c *gin.Context) {
	h.res.ClearCache()
	c.JSON(http.StatusOK, gin.H{"success": true})
}

package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/clearflowhq/adminconsole/internal/resolver"
	"github.com/clearflowhq/adminconsole/internal/upstream"
)

// TableHandler serves enriched table pages for the console grid views.
type TableHandler struct {
	client *upstream.Client
	res    *resolver.Resolver
}

// NewTableHandler constructs a TableHandler.
func NewTableHandler(client *upstream.Client, res *resolver.Resolver) *TableHandler {
	return &TableHandler{client: client, res: res}
}

// Data fetches one page of upstream rows and returns them with every
// recognized foreign-key column annotated with its resolved label.
// Resolution failures never fail the page; unresolved columns carry the
// raw id.
func (h *TableHandler) Data(c *gin.Context) {
	table := strings.TrimSpace(c.Param("table"))
	if table == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing table"})
		return
	}

	query := url.Values{}
	for _, key := range []string{"page", "pageSize", "search", "sort", "order"} {
		if value := strings.TrimSpace(c.Query(key)); value != "" {
			query.Set(key, value)
		}
	}

	rows, errFetch := h.client.FetchTableData(c.Request.Context(), table, query)
	if errFetch != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream fetch failed"})
		return
	}

	enriched := h.res.ResolveRows(c.Request.Context(), rows)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"items": enriched, "total": len(enriched)}})
}

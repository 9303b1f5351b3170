package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/clearflowhq/adminconsole/internal/resolver"
	"github.com/clearflowhq/adminconsole/internal/schema"
)

// FieldHandler serves foreign-key field metadata and select options.
type FieldHandler struct {
	res *resolver.Resolver
}

// NewFieldHandler constructs a FieldHandler.
func NewFieldHandler(res *resolver.Resolver) *FieldHandler {
	return &FieldHandler{res: res}
}

// List returns the recognized foreign-key columns and their metadata.
func (h *FieldHandler) List(c *gin.Context) {
	out := make([]gin.H, 0)
	for _, field := range schema.Fields() {
		fk, _ := schema.Config(field)
		out = append(out, gin.H{
			"field":         field,
			"entity":        fk.Entity,
			"display_field": fk.DisplayField,
			"label":         fk.Label,
		})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": out})
}

// Options returns the selectable values for a foreign-key form control.
func (h *FieldHandler) Options(c *gin.Context) {
	field := strings.TrimSpace(c.Param("field"))
	options, errOptions := h.res.Options(c.Request.Context(), field)
	if errOptions != nil {
		var unknown *resolver.UnknownFieldError
		if errors.As(errOptions, &unknown) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown foreign key field"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "options fetch failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": options})
}

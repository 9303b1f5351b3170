// Package devbackend is a stand-in for the production REST backend. It
// serves the three reference lookup shapes the console understands from
// a local database, so the console and its tests can run without the
// real platform. Response envelopes intentionally differ per shape to
// mirror the backend's migration state.
package devbackend

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	dbutil "github.com/clearflowhq/adminconsole/internal/db"
	"github.com/clearflowhq/adminconsole/internal/models"
)

// maxPageSize caps every listing, matching the production backend.
const maxPageSize = 1000

// Handler serves reference data endpoints from the local database.
type Handler struct {
	db *gorm.DB
}

// NewHandler constructs a Handler.
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// RegisterRoutes registers the tier endpoints on the engine.
func RegisterRoutes(r *gin.Engine, db *gorm.DB) {
	if r == nil || db == nil {
		return
	}
	h := NewHandler(db)
	r.GET("/healthz", h.Healthz)
	r.GET("/api/admin/business/tables/:table/lookup", h.Lookup)
	r.GET("/api/admin/business/tables/:table/data", h.TableData)
	r.GET("/api/admin/entities/:table/rows", h.EntityRows)
}

// Healthz reports liveness and database reachability.
func (h *Handler) Healthz(c *gin.Context) {
	sqlDB, errDB := h.db.DB()
	if errDB != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Lookup returns pre-formatted {id, display_name} pairs for a table.
func (h *Handler) Lookup(c *gin.Context) {
	table := strings.TrimSpace(c.Param("table"))
	limit := clampLimit(c.Query("limit"))

	rows, errFetch := h.fetch(c, table, limit, "")
	if errFetch != nil {
		respondFetchError(c, errFetch)
		return
	}

	out := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		out = append(out, gin.H{"id": row["id"], "display_name": row["display_name"]})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": out})
}

// TableData returns raw records under the paged {items: [...]} envelope.
func (h *Handler) TableData(c *gin.Context) {
	table := strings.TrimSpace(c.Param("table"))
	limit := clampLimit(c.Query("pageSize"))
	search := strings.TrimSpace(c.Query("search"))

	rows, errFetch := h.fetch(c, table, limit, search)
	if errFetch != nil {
		respondFetchError(c, errFetch)
		return
	}
	for _, row := range rows {
		delete(row, "display_name")
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"items": rows, "total": len(rows)}})
}

// EntityRows returns raw records under the flat data array envelope.
func (h *Handler) EntityRows(c *gin.Context) {
	table := strings.TrimSpace(c.Param("table"))
	limit := clampLimit(c.Query("pageSize"))

	rows, errFetch := h.fetch(c, table, limit, "")
	if errFetch != nil {
		respondFetchError(c, errFetch)
		return
	}
	for _, row := range rows {
		delete(row, "display_name")
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": rows})
}

// errUnknownTable marks a table name outside the served set.
var errUnknownTable = fmt.Errorf("devbackend: unknown table")

func respondFetchError(c *gin.Context, err error) {
	if err == errUnknownTable {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "unknown table"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "query failed"})
}

func clampLimit(raw string) int {
	limit, errParse := strconv.Atoi(strings.TrimSpace(raw))
	if errParse != nil || limit <= 0 || limit > maxPageSize {
		return maxPageSize
	}
	return limit
}

// fetch loads up to limit rows for the table as generic records with a
// display_name column attached. An optional search filters on the
// table's display column, case-insensitively.
func (h *Handler) fetch(c *gin.Context, table string, limit int, search string) ([]gin.H, error) {
	conn := h.db.WithContext(c.Request.Context())
	switch table {
	case "accounts":
		var rows []models.Account
		if err := h.find(conn, &rows, "name", search, limit); err != nil {
			return nil, err
		}
		out := make([]gin.H, 0, len(rows))
		for _, row := range rows {
			out = append(out, gin.H{
				"id": row.ID, "name": row.Name, "status": row.Status,
				"parent_account_id": row.ParentAccountID, "address_id": row.AddressID,
				"display_name": row.Name,
			})
		}
		return out, nil
	case "locations":
		var rows []models.Location
		if err := h.find(conn, &rows, "name", search, limit); err != nil {
			return nil, err
		}
		out := make([]gin.H, 0, len(rows))
		for _, row := range rows {
			out = append(out, gin.H{
				"id": row.ID, "name": row.Name,
				"account_id": row.AccountID, "address_id": row.AddressID,
				"display_name": row.Name,
			})
		}
		return out, nil
	case "assets":
		var rows []models.Asset
		if err := h.find(conn, &rows, "name", search, limit); err != nil {
			return nil, err
		}
		out := make([]gin.H, 0, len(rows))
		for _, row := range rows {
			out = append(out, gin.H{
				"id": row.ID, "name": row.Name, "serial_number": row.SerialNumber,
				"model": row.Model, "location_id": row.LocationID,
				"display_name": row.Name,
			})
		}
		return out, nil
	case "work_orders":
		var rows []models.WorkOrder
		if err := h.find(conn, &rows, "title", search, limit); err != nil {
			return nil, err
		}
		out := make([]gin.H, 0, len(rows))
		for _, row := range rows {
			out = append(out, gin.H{
				"id": row.ID, "title": row.Title, "status": row.Status,
				"asset_id": row.AssetID, "assigned_to": row.AssignedTo, "due_at": row.DueAt,
				"display_name": row.Title,
			})
		}
		return out, nil
	case "contaminants":
		var rows []models.Contaminant
		if err := h.find(conn, &rows, "name", search, limit); err != nil {
			return nil, err
		}
		out := make([]gin.H, 0, len(rows))
		for _, row := range rows {
			out = append(out, gin.H{
				"id": row.ID, "name": row.Name, "category": row.Category, "mcl": row.MCL,
				"display_name": row.Name,
			})
		}
		return out, nil
	case "users":
		var rows []models.ConsoleUser
		if err := h.find(conn, &rows, "email", search, limit); err != nil {
			return nil, err
		}
		out := make([]gin.H, 0, len(rows))
		for _, row := range rows {
			out = append(out, gin.H{
				"id": row.ID, "name": row.Name, "email": row.Email,
				"role_id": row.RoleID, "active": row.Active,
				"display_name": row.Email,
			})
		}
		return out, nil
	case "roles":
		var rows []models.Role
		if err := h.find(conn, &rows, "name", search, limit); err != nil {
			return nil, err
		}
		out := make([]gin.H, 0, len(rows))
		for _, row := range rows {
			out = append(out, gin.H{
				"id": row.ID, "name": row.Name, "description": row.Description,
				"display_name": row.Name,
			})
		}
		return out, nil
	case "addresses":
		var rows []models.Address
		if err := h.find(conn, &rows, "line1", search, limit); err != nil {
			return nil, err
		}
		out := make([]gin.H, 0, len(rows))
		for _, row := range rows {
			// Addresses carry no single display column; clients join
			// street, city, and state themselves.
			out = append(out, gin.H{
				"id": row.ID, "line1": row.Line1, "line2": row.Line2,
				"city": row.City, "state": row.State, "zip": row.Zip,
				"display_name": "",
			})
		}
		return out, nil
	case "content_blocks":
		var rows []models.ContentBlock
		if err := h.find(conn, &rows, "title", search, limit); err != nil {
			return nil, err
		}
		out := make([]gin.H, 0, len(rows))
		for _, row := range rows {
			out = append(out, gin.H{
				"id": row.ID, "title": row.Title, "slug": row.Slug, "published": row.Published,
				"display_name": row.Title,
			})
		}
		return out, nil
	default:
		return nil, errUnknownTable
	}
}

func (h *Handler) find(conn *gorm.DB, dest any, searchColumn, search string, limit int) error {
	q := conn.Order("id ASC").Limit(limit)
	if search != "" {
		pattern := dbutil.NormalizeLikePattern(h.db, "%"+search+"%")
		q = q.Where(dbutil.CaseInsensitiveLikeExpr(h.db, searchColumn), pattern)
	}
	if errFind := q.Find(dest).Error; errFind != nil {
		return fmt.Errorf("devbackend: list rows: %w", errFind)
	}
	return nil
}

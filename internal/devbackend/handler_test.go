package devbackend

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	dbutil "github.com/clearflowhq/adminconsole/internal/db"
)

func newTestBackend(t *testing.T) *gin.Engine {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if errMigrate := dbutil.Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}
	if errSeed := Seed(conn); errSeed != nil {
		t.Fatalf("seed: %v", errSeed)
	}

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	RegisterRoutes(engine, conn)
	return engine
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, engine *gin.Engine, path string) envelope {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET %s: status %d: %s", path, rec.Code, rec.Body.String())
	}
	var env envelope
	if errDecode := json.Unmarshal(rec.Body.Bytes(), &env); errDecode != nil {
		t.Fatalf("decode envelope: %v", errDecode)
	}
	if !env.Success {
		t.Fatalf("expected success envelope for %s", path)
	}
	return env
}

func TestLookup_ReturnsDisplayNames(t *testing.T) {
	engine := newTestBackend(t)

	env := doRequest(t, engine, "/api/admin/business/tables/accounts/lookup?limit=1000")
	var records []map[string]any
	if errDecode := json.Unmarshal(env.Data, &records); errDecode != nil {
		t.Fatalf("decode data: %v", errDecode)
	}
	if len(records) == 0 {
		t.Fatalf("expected seeded accounts")
	}
	if records[0]["display_name"] != "Acme Water Co" {
		t.Fatalf("unexpected first display name: %v", records[0])
	}
}

func TestTableData_ItemsEnvelopeAndSearch(t *testing.T) {
	engine := newTestBackend(t)

	env := doRequest(t, engine, "/api/admin/business/tables/locations/data?pageSize=1000&search=mesa")
	var wrapper struct {
		Items []map[string]any `json:"items"`
		Total int              `json:"total"`
	}
	if errDecode := json.Unmarshal(env.Data, &wrapper); errDecode != nil {
		t.Fatalf("decode data: %v", errDecode)
	}
	if len(wrapper.Items) != 1 || wrapper.Items[0]["name"] != "Mesa Well Site" {
		t.Fatalf("expected search to match one location, got %v", wrapper.Items)
	}
	if _, hasDisplay := wrapper.Items[0]["display_name"]; hasDisplay {
		t.Fatalf("raw table data must not carry display_name")
	}
}

func TestEntityRows_FlatArrayEnvelope(t *testing.T) {
	engine := newTestBackend(t)

	env := doRequest(t, engine, "/api/admin/entities/contaminants/rows?pageSize=1000")
	var records []map[string]any
	if errDecode := json.Unmarshal(env.Data, &records); errDecode != nil {
		t.Fatalf("decode data: %v", errDecode)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 seeded contaminants, got %d", len(records))
	}
}

func TestUnknownTable_NotFound(t *testing.T) {
	engine := newTestBackend(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/business/tables/nope/lookup", nil)
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown table, got %d", rec.Code)
	}
}

func TestSeed_Idempotent(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if errMigrate := dbutil.Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}
	if errSeed := Seed(conn); errSeed != nil {
		t.Fatalf("first seed: %v", errSeed)
	}
	if errSeed := Seed(conn); errSeed != nil {
		t.Fatalf("second seed: %v", errSeed)
	}

	var count int64
	if errCount := conn.Table("accounts").Count(&count).Error; errCount != nil {
		t.Fatalf("count: %v", errCount)
	}
	if count != 3 {
		t.Fatalf("expected 3 accounts after double seed, got %d", count)
	}
}

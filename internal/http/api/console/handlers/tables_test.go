package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clearflowhq/adminconsole/internal/lookupcache"
	"github.com/clearflowhq/adminconsole/internal/resolver"
	"github.com/clearflowhq/adminconsole/internal/upstream"
)

// newTestConsole wires the handlers against a stub upstream that serves
// a work order page plus the reference lookups its columns need.
func newTestConsole(t *testing.T) *gin.Engine {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/admin/business/tables/work_orders/data":
			_, _ = w.Write([]byte(`{"success":true,"data":{"items":[
				{"id":"w1","title":"Replace RO membrane","asset_id":"as1","assigned_to":"u1"},
				{"id":"w2","title":"Quarterly filter swap","asset_id":"as2","assigned_to":"u1"}
			]}}`))
		case "/api/admin/business/tables/assets/lookup":
			_, _ = w.Write([]byte(`{"success":true,"data":[
				{"id":"as1","display_name":"RO Unit 1"},
				{"id":"as2","display_name":"Carbon Filter A"}
			]}`))
		case "/api/admin/business/tables/users/lookup":
			_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"u1","display_name":"sam@clearflow.example"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	client := upstream.New(server.URL, time.Second)
	res := resolver.New(client, lookupcache.New(time.Minute))

	gin.SetMode(gin.TestMode)
	engine := gin.New()

	tableHandler := NewTableHandler(client, res)
	engine.GET("/api/console/tables/:table/data", tableHandler.Data)

	fieldHandler := NewFieldHandler(res)
	engine.GET("/api/console/fields/:field/options", fieldHandler.Options)

	cacheHandler := NewCacheHandler(res)
	engine.POST("/api/console/cache/clear", cacheHandler.Clear)

	return engine
}

func TestTableData_EnrichesForeignKeys(t *testing.T) {
	engine := newTestConsole(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/console/tables/work_orders/data?pageSize=25", nil)
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Items []map[string]any `json:"items"`
			Total int              `json:"total"`
		} `json:"data"`
	}
	if errDecode := json.Unmarshal(rec.Body.Bytes(), &body); errDecode != nil {
		t.Fatalf("decode: %v", errDecode)
	}
	if !body.Success || len(body.Data.Items) != 2 {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}

	first := body.Data.Items[0]
	if first["asset_id_resolved"] != "RO Unit 1" {
		t.Fatalf("expected resolved asset, got %v", first)
	}
	if first["assigned_to_resolved"] != "sam@clearflow.example" {
		t.Fatalf("expected resolved technician, got %v", first)
	}
	if first["title"] != "Replace RO membrane" {
		t.Fatalf("original columns must pass through, got %v", first)
	}
}

func TestFieldOptions_KnownAndUnknown(t *testing.T) {
	engine := newTestConsole(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/console/fields/asset_id/options", nil)
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Data []resolver.Option `json:"data"`
	}
	if errDecode := json.Unmarshal(rec.Body.Bytes(), &body); errDecode != nil {
		t.Fatalf("decode: %v", errDecode)
	}
	if len(body.Data) != 2 || body.Data[0].Label != "Carbon Filter A" {
		t.Fatalf("expected sorted asset options, got %+v", body.Data)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/console/fields/nope/options", nil)
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown field, got %d", rec.Code)
	}
}

func TestCacheClear(t *testing.T) {
	engine := newTestConsole(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/console/cache/clear", nil)
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestTableData_UpstreamFailureIsBadGateway(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client := upstream.New(server.URL, time.Second)
	res := resolver.New(client, lookupcache.New(time.Minute))

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/api/console/tables/:table/data", NewTableHandler(client, res).Data)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/console/tables/accounts/data", nil)
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"
)

func TestFetch_LookupTierPathAndEnvelope(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":1,"display_name":"Acme Co"}]}`))
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	records, errFetch := client.Fetch(context.Background(), TierLookup, "accounts")
	if errFetch != nil {
		t.Fatalf("fetch: %v", errFetch)
	}
	if gotPath != "/api/admin/business/tables/accounts/lookup?limit=1000" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if len(records) != 1 || records[0].ID() != "1" {
		t.Fatalf("unexpected records: %+v", records)
	}
	if records[0].String("display_name") != "Acme Co" {
		t.Fatalf("unexpected display name")
	}
}

func TestFetch_ItemsWrapperEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"items":[{"id":"a1","name":"Widget"}],"total":1}}`))
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	records, errFetch := client.Fetch(context.Background(), TierTableData, "assets")
	if errFetch != nil {
		t.Fatalf("fetch: %v", errFetch)
	}
	if len(records) != 1 || records[0].ID() != "a1" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestFetch_BareArrayBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"r1"}]`))
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	records, errFetch := client.Fetch(context.Background(), TierEntityRows, "roles")
	if errFetch != nil {
		t.Fatalf("fetch: %v", errFetch)
	}
	if len(records) != 1 || records[0].ID() != "r1" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestFetch_ErrorsOnNon2xxAndFailureEnvelope(t *testing.T) {
	status := http.StatusInternalServerError
	body := `{}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	if _, errFetch := client.Fetch(context.Background(), TierLookup, "accounts"); errFetch == nil {
		t.Fatalf("expected error on 500")
	}

	status = http.StatusOK
	body = `{"success":false,"data":[]}`
	if _, errFetch := client.Fetch(context.Background(), TierTableData, "accounts"); errFetch == nil {
		t.Fatalf("expected error on failure envelope")
	}
}

func TestFetch_CoalescesConcurrentIdenticalFetches(t *testing.T) {
	var (
		mu    sync.Mutex
		calls int
	)
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		<-release
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":1,"display_name":"Acme Co"}]}`))
	}))
	defer server.Close()

	client := New(server.URL, 5*time.Second)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := client.Fetch(context.Background(), TierLookup, "accounts"); err != nil {
				t.Errorf("fetch: %v", err)
			}
		}()
	}
	// Let the goroutines pile onto the in-flight request, then release it.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Fatalf("expected 1 coalesced call, got %d", calls)
	}
}

func TestFetchTableData_PassesQueryThrough(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	query := url.Values{}
	query.Set("page", "2")
	query.Set("pageSize", "25")
	query.Set("search", "acme")

	if _, errFetch := client.FetchTableData(context.Background(), "accounts", query); errFetch != nil {
		t.Fatalf("fetch table data: %v", errFetch)
	}
	if gotQuery.Get("page") != "2" || gotQuery.Get("pageSize") != "25" || gotQuery.Get("search") != "acme" {
		t.Fatalf("query not passed through: %v", gotQuery)
	}
}

func TestScalarString(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"abc-123", "abc-123"},
		{float64(5), "5"},
		{float64(5.5), "5.5"},
		{int64(42), "42"},
		{true, "true"},
	}
	for _, tc := range cases {
		if got := ScalarString(tc.in); got != tc.want {
			t.Fatalf("ScalarString(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"guidedog-records/internal/adapters/auth/jwtauth"
	"guidedog-records/internal/adapters/auth/tokenstore"
	"guidedog-records/internal/ports/events"
	"guidedog-records/internal/router"
)

func newDevServer(t *testing.T, opts router.Options) *httptest.Server {
	t.Helper()
	h, _, err := router.NewRouter(opts)
	if err != nil {
		t.Fatalf("new router: %v", err)
	}
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

type caller struct {
	id    string
	role  string
	token string
}

var (
	admin   = caller{id: "admin-1", role: "admin"}
	trainer = caller{id: "trainer-1", role: "trainer"}
	vet     = caller{id: "vet-1", role: "veterinarian"}
	raiser  = caller{id: "raiser-1", role: "puppy_raiser"}
	nobody  = caller{}
)

func TestHTTP_HealthMetricsSwagger(t *testing.T) {
	ts := newDevServer(t, router.Options{Pending: func() int { return 3 }})

	st, body := doReq(t, ts.URL, "GET", "/health", nobody, nil)
	if st != http.StatusOK || !strings.Contains(string(body), `"notify_pending":3`) {
		t.Fatalf("health: %d %s", st, body)
	}

	st, body = doReq(t, ts.URL, "GET", "/metrics", nobody, nil)
	if st != http.StatusOK || !strings.Contains(string(body), "guidedog_http_requests_total") {
		t.Fatalf("metrics: %d", st)
	}

	st, body = doReq(t, ts.URL, "GET", "/swagger/doc.json", nobody, nil)
	if st != http.StatusOK || !strings.Contains(string(body), "/medical-records") {
		t.Fatalf("swagger doc: %d", st)
	}
}

func TestHTTP_RequiresUser(t *testing.T) {
	ts := newDevServer(t, router.Options{})

	st, _ := doReq(t, ts.URL, "GET", "/dogs", nobody, nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without user, got %d", st)
	}
}

func TestHTTP_DogsAndVaccineReport(t *testing.T) {
	ts := newDevServer(t, router.Options{})

	// 1) solo admin/trainer crean perros
	dogID := createID(t, ts.URL, "/dogs", trainer, map[string]any{
		"name":     "Lucky",
		"category": "guide_dog",
		"sex":      "male",
	})
	{
		st, _ := doReq(t, ts.URL, "POST", "/dogs", raiser, map[string]any{"name": "X", "category": "guide_dog"})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 dog create by puppy raiser, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "POST", "/dogs", admin, map[string]any{"name": "X", "category": "unknown"})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 unknown category, got %d", st)
		}
	}

	// 2) cualquier usuario registra una vacuna
	createID(t, ts.URL, "/medical-records", raiser, map[string]any{
		"dog_id":     dogID,
		"category":   "vaccination",
		"visit_date": "2024-04-10",
		"hospital":   "Central Vet",
		"vaccines":   []string{"rabies", "dhpp"},
	})

	// 3) reporte: vet puede, adopter no
	st, body := doReq(t, ts.URL, "GET", "/reports/vaccines?category=guide_dog&year=2024", vet, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 vaccine report, got %d body=%s", st, body)
	}
	var m struct {
		Columns []string `json:"columns"`
		Rows    []struct {
			DogName string `json:"dog_name"`
			Cells   []struct {
				Column  string `json:"column"`
				Entries []struct {
					Detail string `json:"detail"`
				} `json:"entries"`
			} `json:"cells"`
		} `json:"rows"`
	}
	if err := json.Unmarshal(body, &m); err != nil {
		t.Fatalf("decode matrix: %v", err)
	}
	if len(m.Rows) != 1 || m.Rows[0].DogName != "Lucky" {
		t.Fatalf("unexpected rows: %s", body)
	}
	if len(m.Rows[0].Cells[0].Entries) != 1 || m.Rows[0].Cells[0].Entries[0].Detail != "Central Vet" {
		t.Fatalf("rabies cell: %s", body)
	}
	if len(m.Rows[0].Cells[2].Entries) != 0 {
		t.Fatalf("leptospirosis should be empty: %s", body)
	}

	st, _ = doReq(t, ts.URL, "GET", "/reports/vaccines?category=guide_dog", caller{id: "a", role: "adopter"}, nil)
	if st != http.StatusForbidden {
		t.Fatalf("expected 403 report for adopter, got %d", st)
	}

	// 4) borrar el perro no borra el registro
	st, _ = doReq(t, ts.URL, "DELETE", "/dogs/"+dogID, admin, nil)
	if st != http.StatusNoContent {
		t.Fatalf("expected 204 delete dog, got %d", st)
	}
	st, body = doReq(t, ts.URL, "GET", "/medical-records?year=2024", admin, nil)
	if st != http.StatusOK || !strings.Contains(string(body), `"dog_name":"Lucky"`) {
		t.Fatalf("record should survive dog deletion: %d %s", st, body)
	}
}

func TestHTTP_NoticesAudience(t *testing.T) {
	ts := newDevServer(t, router.Options{})

	createID(t, ts.URL, "/notices", admin, map[string]any{"title": "Trainers only", "audience": []string{"trainer"}})
	createID(t, ts.URL, "/notices", admin, map[string]any{"title": "Everyone", "pinned": true})

	{
		st, _ := doReq(t, ts.URL, "POST", "/notices", trainer, map[string]any{"title": "nope"})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 notice by trainer, got %d", st)
		}
	}

	var list []struct {
		Title string `json:"title"`
	}
	_, body := doReq(t, ts.URL, "GET", "/notices", raiser, nil)
	_ = json.Unmarshal(body, &list)
	if len(list) != 1 || list[0].Title != "Everyone" {
		t.Fatalf("puppy raiser notices: %s", body)
	}

	_, body = doReq(t, ts.URL, "GET", "/notices", trainer, nil)
	list = nil
	_ = json.Unmarshal(body, &list)
	if len(list) != 2 || list[0].Title != "Everyone" {
		t.Fatalf("trainer notices (pinned first): %s", body)
	}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.DocumentCreated
}

func (p *recordingPublisher) Publish(_ context.Context, e events.DocumentCreated) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func TestHTTP_ActivityPublishesOnlyOnInsert(t *testing.T) {
	pub := &recordingPublisher{}
	ts := newDevServer(t, router.Options{Publisher: pub})

	dogID := createID(t, ts.URL, "/dogs", admin, map[string]any{"name": "Bella", "category": "puppy_in_training"})
	actID := createID(t, ts.URL, "/activities", raiser, map[string]any{
		"dog_id": dogID,
		"date":   "2024-05-02",
		"title":  "First walk",
	})

	st, body := doReq(t, ts.URL, "PUT", "/activities/"+actID, raiser, map[string]any{
		"dog_id": dogID,
		"date":   "2024-05-02",
		"title":  "First walk (edited)",
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 update activity, got %d body=%s", st, body)
	}

	pub.mu.Lock()
	defer pub.mu.Unlock()
	if len(pub.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(pub.events))
	}
	e := pub.events[0]
	if e.Collection != events.CollectionActivities || e.ID != actID || e.Fields["dog"] != "Bella" {
		t.Fatalf("unexpected event: %+v", e)
	}
}

func TestHTTP_LoginLogoutWithJWT(t *testing.T) {
	jwtSvc, err := jwtauth.New(jwtauth.Config{Secret: "s3cret", TTL: time.Hour}, tokenstore.NewMemory())
	if err != nil {
		t.Fatalf("jwt: %v", err)
	}
	ts := newDevServer(t, router.Options{
		AuthVerifier:           jwtSvc,
		TokenIssuer:            jwtSvc,
		TokenRevoker:           jwtSvc,
		BootstrapAdminID:       "root",
		BootstrapAdminPassword: "changeme",
	})

	// credenciales malas
	st, _ := doReq(t, ts.URL, "POST", "/auth/login", nobody, map[string]any{"id": "root", "password": "wrong"})
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 bad password, got %d", st)
	}

	st, body := doReq(t, ts.URL, "POST", "/auth/login", nobody, map[string]any{"id": "root", "password": "changeme"})
	if st != http.StatusOK {
		t.Fatalf("expected 200 login, got %d body=%s", st, body)
	}
	var login struct {
		Token string `json:"token"`
	}
	_ = json.Unmarshal(body, &login)
	root := caller{token: login.Token}

	// los headers dev no sirven con verifier
	st, _ = doReq(t, ts.URL, "GET", "/me", admin, nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 with debug headers, got %d", st)
	}

	st, body = doReq(t, ts.URL, "GET", "/me", root, nil)
	if st != http.StatusOK || !strings.Contains(string(body), `"users:manage"`) {
		t.Fatalf("me: %d %s", st, body)
	}

	// admin crea un trainer que luego entra con su propia cuenta
	createID(t, ts.URL, "/users", root, map[string]any{"id": "t-1", "password": "pass1", "role": "trainer", "name": "Tom"})
	st, _ = doReq(t, ts.URL, "POST", "/users", root, map[string]any{"id": "t-1", "password": "pass1", "role": "trainer", "name": "Tom"})
	if st != http.StatusConflict {
		t.Fatalf("expected 409 duplicate user, got %d", st)
	}

	st, _ = doReq(t, ts.URL, "POST", "/auth/logout", root, nil)
	if st != http.StatusNoContent {
		t.Fatalf("expected 204 logout, got %d", st)
	}
	st, _ = doReq(t, ts.URL, "GET", "/me", root, nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", st)
	}
}

func createID(t *testing.T, baseURL, path string, c caller, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", path, c, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 POST %s, got %d body=%s", path, st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("POST %s: missing id body=%s", path, string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path string, c caller, payload any) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.id != "" {
		req.Header.Set("X-Debug-User-ID", c.id)
		req.Header.Set("X-Debug-Role", c.role)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}

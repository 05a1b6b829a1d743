package ops

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/config"
	"github.com/Alopex9527/OpenBTS-UMTS/apps/mm-server/internal/store"
	"github.com/Alopex9527/OpenBTS-UMTS/pkg/httputil"
	"github.com/Alopex9527/OpenBTS-UMTS/pkg/l3"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const testIMSI = "001010123456789"

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	handler http.Handler
	subs    store.SubscriberTable
	mr      *miniredis.Miniredis
	reg     *prometheus.Registry
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	mr := miniredis.RunT(t)
	host, port, err := net.SplitHostPort(mr.Addr())
	if err != nil {
		t.Fatalf("SplitHostPort() error = %v", err)
	}
	cfg := &config.Config{
		RedisHost:     host,
		RedisPort:     port,
		OpsListenAddr: "127.0.0.1:0",
		GinMode:       gin.TestMode,
		LogMaskIMSI:   true,
	}
	vc, err := store.NewValkeyClient(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewValkeyClient() error = %v", err)
	}
	t.Cleanup(func() { _ = vc.Close() })

	subs := store.NewSubscriberTable(vc)
	reg := prometheus.NewRegistry()
	srv := New(cfg, NewHandler(vc, subs, cfg.LogMaskIMSI), reg)
	return &testServer{handler: srv.Handler(), subs: subs, mr: mr, reg: reg}
}

func (ts *testServer) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	ts.handler.ServeHTTP(w, req)
	return w
}

func (ts *testServer) seed(t *testing.T) uint32 {
	t.Helper()
	lur := &l3.LocationUpdatingRequest{
		CKSN:       l3.NoKeyAvailable,
		UpdateType: l3.IMSIAttach,
		LAI:        l3.LocationAreaIdentity{MCC: "001", MNC: "01", LAC: 1},
		Classmark:  0x33,
		MobileID:   l3.NewIMSIIdentity(testIMSI),
	}
	tmsi, err := ts.subs.AssignTMSI(context.Background(), testIMSI, lur)
	if err != nil {
		t.Fatalf("AssignTMSI() error = %v", err)
	}
	return tmsi
}

func assertProblem(t *testing.T, w *httptest.ResponseRecorder, wantStatus int) {
	t.Helper()
	if w.Code != wantStatus {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, wantStatus, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, httputil.ContentType) {
		t.Errorf("Content-Type = %q, want %q", ct, httputil.ContentType)
	}
	var p httputil.ProblemDetail
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if p.Status != wantStatus {
		t.Errorf("problem status = %d, want %d", p.Status, wantStatus)
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	w := ts.get("/health")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body healthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if body.Status != "ok" {
		t.Errorf("status = %q, want ok", body.Status)
	}
	if w.Header().Get(traceIDHeader) == "" {
		t.Error("X-Trace-ID header missing")
	}
}

func TestHealthValkeyDown(t *testing.T) {
	ts := newTestServer(t)
	ts.mr.Close()

	assertProblem(t, ts.get("/health"), http.StatusServiceUnavailable)
}

func TestSubscriber(t *testing.T) {
	ts := newTestServer(t)
	ts.seed(t)

	w := ts.get("/api/v1/subscribers/" + testIMSI)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if body["imsi"] != testIMSI {
		t.Errorf("imsi = %v, want %s", body["imsi"], testIMSI)
	}
	if body["tmsi"] != "00000001" {
		t.Errorf("tmsi = %v, want 00000001", body["tmsi"])
	}
	if body["lai"] != "001-01-1" {
		t.Errorf("lai = %v, want 001-01-1", body["lai"])
	}
}

func TestSubscriberErrors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		closeStore bool
		wantStatus int
	}{
		{"non-digit IMSI", "/api/v1/subscribers/00101abc", false, http.StatusBadRequest},
		{"too long IMSI", "/api/v1/subscribers/0010101234567890", false, http.StatusBadRequest},
		{"unknown IMSI", "/api/v1/subscribers/001010000000000", false, http.StatusNotFound},
		{"valkey down", "/api/v1/subscribers/" + testIMSI, true, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			if tt.closeStore {
				ts.mr.Close()
			}
			assertProblem(t, ts.get(tt.path), tt.wantStatus)
		})
	}
}

func TestTMSILookup(t *testing.T) {
	ts := newTestServer(t)
	tmsi := ts.seed(t)
	if tmsi != 1 {
		t.Fatalf("AssignTMSI() = %d, want 1", tmsi)
	}

	for _, path := range []string{"/api/v1/tmsis/00000001", "/api/v1/tmsis/1"} {
		w := ts.get(path)
		if w.Code != http.StatusOK {
			t.Fatalf("GET %s status = %d, want 200", path, w.Code)
		}
		var body tmsiResponse
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("json.Unmarshal() error = %v", err)
		}
		if body.TMSI != "00000001" || body.IMSI != testIMSI {
			t.Errorf("GET %s = %+v", path, body)
		}
	}
}

func TestTMSILookupErrors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		closeStore bool
		wantStatus int
	}{
		{"not hex", "/api/v1/tmsis/zz", false, http.StatusBadRequest},
		{"too long", "/api/v1/tmsis/123456789", false, http.StatusBadRequest},
		{"unknown", "/api/v1/tmsis/000000ff", false, http.StatusNotFound},
		{"valkey down", "/api/v1/tmsis/00000001", true, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			if tt.closeStore {
				ts.mr.Close()
			}
			assertProblem(t, ts.get(tt.path), tt.wantStatus)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "mm_test_total", Help: "test counter"})
	ts.reg.MustRegister(c)
	c.Inc()

	w := ts.get("/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "mm_test_total 1") {
		t.Errorf("body does not contain counter: %s", w.Body.String())
	}
}

func TestNoRoute(t *testing.T) {
	ts := newTestServer(t)
	assertProblem(t, ts.get("/api/v1/unknown"), http.StatusNotFound)
}

func TestValidateIMSI(t *testing.T) {
	tests := []struct {
		imsi    string
		wantErr bool
	}{
		{testIMSI, false},
		{"00101012345678", false},
		{"001010", false},
		{"00101", true},
		{"", true},
		{"00101012345678a", true},
	}
	for _, tt := range tests {
		if err := validateIMSI(tt.imsi); (err != nil) != tt.wantErr {
			t.Errorf("validateIMSI(%q) error = %v, wantErr %v", tt.imsi, err, tt.wantErr)
		}
	}
}

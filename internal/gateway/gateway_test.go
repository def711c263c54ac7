package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/config"
	"shareit/internal/errors"
	"shareit/internal/handler"
)

type recorded struct {
	Method   string
	Path     string
	RawQuery string
	UserID   string
	Body     string
}

// upstream is a fake server tier that records what reaches it.
type upstream struct {
	mu       sync.Mutex
	calls    []recorded
	status   int
	response string
	srv      *httptest.Server
}

func newUpstream(t *testing.T, status int, response string) *upstream {
	t.Helper()
	u := &upstream{status: status, response: response}
	u.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		u.mu.Lock()
		u.calls = append(u.calls, recorded{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
			UserID:   r.Header.Get(handler.HeaderUserID),
			Body:     string(body),
		})
		u.mu.Unlock()
		if u.response == "" {
			w.WriteHeader(u.status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(u.status)
		_, _ = io.WriteString(w, u.response)
	}))
	t.Cleanup(u.srv.Close)
	return u
}

func (u *upstream) last(t *testing.T) recorded {
	t.Helper()
	u.mu.Lock()
	defer u.mu.Unlock()
	require.NotEmpty(t, u.calls, "no call reached the server")
	return u.calls[len(u.calls)-1]
}

func (u *upstream) count() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.calls)
}

func newGateway(t *testing.T, serverURL string, limit config.RateLimitConfig) *echo.Echo {
	t.Helper()
	nop := zerolog.Nop()
	e := echo.New()
	client := NewClient(serverURL, time.Second, &nop)
	Register(e, config.GatewayConfig{RateLimit: limit}, &nop, NewHandler(client))
	return e
}

var generous = config.RateLimitConfig{RPS: 1000, Burst: 1000}

func call(e *echo.Echo, method, target, userID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if userID != "" {
		req.Header.Set(handler.HeaderUserID, userID)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp errors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp.Code
}

func TestGateway_ForwardsValidRequest(t *testing.T) {
	up := newUpstream(t, http.StatusCreated, `{"id":1,"name":"Drill","available":true}`)
	e := newGateway(t, up.srv.URL, generous)

	rec := call(e, http.MethodPost, "/items", "7", `{"name":"Drill","description":"Cordless","available":true}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":1,"name":"Drill","available":true}`, rec.Body.String())

	got := up.last(t)
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/items", got.Path)
	assert.Equal(t, "7", got.UserID)
	assert.JSONEq(t, `{"name":"Drill","description":"Cordless","available":true}`, got.Body)
}

func TestGateway_RelaysServerErrorsVerbatim(t *testing.T) {
	body := `{"error":"only the item owner can do this","code":"NOT_ITEM_OWNER"}`
	up := newUpstream(t, http.StatusForbidden, body)
	e := newGateway(t, up.srv.URL, generous)

	rec := call(e, http.MethodPatch, "/items/3", "2", `{"name":"Mine"}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, body, rec.Body.String())
	assert.Equal(t, http.MethodPatch, up.last(t).Method)
}

func TestGateway_RejectsBeforeForwarding(t *testing.T) {
	up := newUpstream(t, http.StatusOK, `{}`)
	e := newGateway(t, up.srv.URL, generous)
	future := time.Now().UTC().Add(24 * time.Hour)
	layout := "2006-01-02T15:04:05"

	tests := []struct {
		name     string
		method   string
		target   string
		userID   string
		body     string
		wantCode string
	}{
		{"missing header", http.MethodGet, "/items", "", "", "MISSING_USER_HEADER"},
		{"bad header", http.MethodGet, "/bookings", "x", "", "INVALID_USER_HEADER"},
		{"blank user name", http.MethodPost, "/users", "", `{"name":"  ","email":"a@b.c"}`, "VALIDATION_ERROR"},
		{"bad email", http.MethodPost, "/users", "", `{"name":"A","email":"nope"}`, "VALIDATION_ERROR"},
		{"put without id", http.MethodPut, "/users", "", `{"name":"A"}`, "VALIDATION_ERROR"},
		{"item without available", http.MethodPost, "/items", "1", `{"name":"A","description":"B"}`, "VALIDATION_ERROR"},
		{"long item name", http.MethodPatch, "/items/1", "1", `{"name":"` + strings.Repeat("n", 201) + `"}`, "VALIDATION_ERROR"},
		{"blank comment", http.MethodPost, "/items/1/comment", "1", `{"text":""}`, "VALIDATION_ERROR"},
		{"blank request", http.MethodPost, "/requests", "1", `{"description":" "}`, "VALIDATION_ERROR"},
		{"booking in the past", http.MethodPost, "/bookings", "1",
			`{"itemId":1,"start":"2020-01-01T10:00:00","end":"` + future.Format(layout) + `"}`, "VALIDATION_ERROR"},
		{"booking end before start", http.MethodPost, "/bookings", "1",
			`{"itemId":1,"start":"` + future.Add(time.Hour).Format(layout) + `","end":"` + future.Format(layout) + `"}`, "VALIDATION_ERROR"},
		{"malformed json", http.MethodPost, "/requests", "1", `{"description":`, "INVALID_REQUEST"},
		{"unknown state", http.MethodGet, "/bookings/owner?state=SOON", "1", "", "UNKNOWN_STATE"},
		{"negative from", http.MethodGet, "/requests/all?from=-1", "1", "", "INVALID_PAGE"},
		{"zero size", http.MethodGet, "/bookings?size=0", "1", "", "INVALID_PAGE"},
		{"missing approved", http.MethodPatch, "/bookings/5", "1", "", "INVALID_APPROVED"},
		{"bad path id", http.MethodGet, "/users/abc", "", "", "INVALID_ID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(e, tt.method, tt.target, tt.userID, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantCode, errorCode(t, rec))
		})
	}
	assert.Zero(t, up.count())
}

func TestGateway_NormalizesQuery(t *testing.T) {
	up := newUpstream(t, http.StatusOK, `[]`)
	e := newGateway(t, up.srv.URL, generous)

	rec := call(e, http.MethodGet, "/bookings/owner?state=current&size=5", "4", "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := up.last(t)
	assert.Equal(t, "/bookings/owner", got.Path)
	assert.Equal(t, "from=0&size=5&state=CURRENT", got.RawQuery)
	assert.Equal(t, "4", got.UserID)

	rec = call(e, http.MethodPatch, "/bookings?approved=FALSE", "4", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "approved=false", up.last(t).RawQuery)
}

func TestGateway_BlankSearchStaysLocal(t *testing.T) {
	up := newUpstream(t, http.StatusOK, `[{"id":1}]`)
	e := newGateway(t, up.srv.URL, generous)

	rec := call(e, http.MethodGet, "/items/search?text=", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	assert.Zero(t, up.count())

	rec = call(e, http.MethodGet, "/items/search?text=drill", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "from=0&size=10&text=drill", up.last(t).RawQuery)
	assert.Empty(t, up.last(t).UserID)
}

func TestGateway_RelaysNoContent(t *testing.T) {
	up := newUpstream(t, http.StatusNoContent, "")
	e := newGateway(t, up.srv.URL, generous)

	rec := call(e, http.MethodDelete, "/users/9", "", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "/users/9", up.last(t).Path)
}

func TestGateway_ServerUnavailable(t *testing.T) {
	up := newUpstream(t, http.StatusOK, `{}`)
	url := up.srv.URL
	up.srv.Close()
	e := newGateway(t, url, generous)

	rec := call(e, http.MethodGet, "/users", "", "")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "SERVER_UNAVAILABLE", errorCode(t, rec))
}

func TestGateway_RateLimitPerCaller(t *testing.T) {
	up := newUpstream(t, http.StatusOK, `[]`)
	e := newGateway(t, up.srv.URL, config.RateLimitConfig{RPS: 0.001, Burst: 1})

	assert.Equal(t, http.StatusOK, call(e, http.MethodGet, "/requests", "1", "").Code)
	limited := call(e, http.MethodGet, "/requests", "1", "")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "RATE_LIMITED", errorCode(t, limited))

	assert.Equal(t, http.StatusOK, call(e, http.MethodGet, "/requests", "2", "").Code)
	assert.Equal(t, http.StatusOK, call(e, http.MethodGet, "/healthz", "1", "").Code)
}

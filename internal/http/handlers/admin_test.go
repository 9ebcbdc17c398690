package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadhub/server/internal/auth"
	"github.com/leadhub/server/internal/leads"
	"github.com/leadhub/server/internal/model"
)

type stubSessions struct {
	configErr error
	loginErr  error
	revokeErr error
	revoked   []string
}

func (s *stubSessions) CheckConfigured() error {
	return s.configErr
}

func (s *stubSessions) Login(string, string) (string, time.Duration, error) {
	if s.loginErr != nil {
		return "", 0, s.loginErr
	}
	return "tok", 90 * time.Minute, nil
}

func (s *stubSessions) Revoke(_ context.Context, token string) error {
	s.revoked = append(s.revoked, token)
	return s.revokeErr
}

type stubManager struct {
	err error
}

func (m stubManager) ListAll(context.Context) ([]model.Lead, error) {
	return nil, m.err
}

func (m stubManager) StatusOverview(context.Context) (leads.Overview, error) {
	return leads.Overview{}, m.err
}

func (m stubManager) UpdateStatus(context.Context, string, string, string) (model.Lead, error) {
	return model.Lead{}, m.err
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestHandleLogin_expiresIn(t *testing.T) {
	h := NewAdminHandler(&stubSessions{}, stubManager{})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"email":"a","password":"b"}`))
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, "tok", body["token"])
	assert.Equal(t, "1h30m0s", body["expiresIn"])
	assert.EqualValues(t, 5400, body["expiresInSeconds"])
	assert.NotContains(t, body, "data")
}

func TestHandleLogin_unexpectedError(t *testing.T) {
	h := NewAdminHandler(&stubSessions{loginErr: errors.New("boom")}, stubManager{})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"email":"a","password":"b"}`))
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to login admin", decodeEnvelope(t, rec)["message"])
}

func TestHandleLogin_configurationCheckedBeforeBody(t *testing.T) {
	h := NewAdminHandler(&stubSessions{configErr: auth.ErrConfiguration}, stubManager{})

	for _, body := range []string{"", "{not json", "{}", `{"email":"a","password":"b"}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.HandleLogin(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code, "body %q", body)
		assert.Equal(t, "Server configuration error", decodeEnvelope(t, rec)["message"], "body %q", body)
	}
}

func TestHandleLogout_revokeFailure(t *testing.T) {
	sessions := &stubSessions{revokeErr: errors.New("redis down")}
	h := NewAdminHandler(sessions, stubManager{})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/logout", nil)
	rec := httptest.NewRecorder()
	h.HandleLogout(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, "Failed to logout admin", body["message"])
	assert.Equal(t, false, body["success"])
	assert.NotContains(t, rec.Body.String(), "redis")
}

func TestReadHandlers_storeFailure(t *testing.T) {
	h := NewAdminHandler(&stubSessions{}, stubManager{err: errors.New("connection reset")})

	rec := httptest.NewRecorder()
	h.HandleAllClients(rec, httptest.NewRequest(http.MethodGet, "/api/admin/all-clients", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to fetch clients data", decodeEnvelope(t, rec)["message"])

	rec = httptest.NewRecorder()
	h.HandleStatusOverview(rec, httptest.NewRequest(http.MethodGet, "/api/admin/status", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to fetch status overview", decodeEnvelope(t, rec)["message"])
}

func TestHandleAllClients_emptyList(t *testing.T) {
	h := NewAdminHandler(&stubSessions{}, stubManager{})
	rec := httptest.NewRecorder()
	h.HandleAllClients(rec, httptest.NewRequest(http.MethodGet, "/api/admin/all-clients", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.EqualValues(t, 0, body["count"])
}

func TestDecodeJSON_trailingData(t *testing.T) {
	var dst loginRequest
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a"} {"email":"b"}`))
	err := decodeJSON(httptest.NewRecorder(), req, &dst)
	assert.Error(t, err)
}

package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"session-service/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	engine := session.NewEngine(session.NewMemoryStore(), 15*time.Minute)
	router := gin.New()
	NewHandler(engine).RegisterRoutes(router)
	return router
}

func post(t *testing.T, router *gin.Engine, body string) session.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/session", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// Failures are always in-band; the transport never signals them
	// through the status code.
	require.Equal(t, http.StatusOK, rec.Code)

	var resp session.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestProcess_MissingBody(t *testing.T) {
	router := newTestRouter()

	for _, body := range []string{"", "{}", "not json"} {
		resp := post(t, router, body)
		require.Equal(t, session.CodeMissingRequestBody, resp.ErrorCode, "body %q", body)
		require.Equal(t, "Invalid request: missing request body", resp.Error)
	}
}

func TestProcess_MissingAction(t *testing.T) {
	router := newTestRouter()

	resp := post(t, router, `{"args":{"userId":"u1"}}`)
	require.Equal(t, session.CodeInvalidAction, resp.ErrorCode)
	require.Equal(t, "Invalid request: missing action", resp.Error)
}

func TestProcess_InvalidAction(t *testing.T) {
	router := newTestRouter()

	resp := post(t, router, `{"action":"renew","args":{}}`)
	require.Equal(t, session.CodeInvalidAction, resp.ErrorCode)
	require.Contains(t, resp.Error, "Invalid action: renew")
	require.Equal(t, session.Action("renew"), resp.Action)
}

func TestProcess_InitMissingUserID(t *testing.T) {
	router := newTestRouter()

	resp := post(t, router, `{"action":"init","args":{}}`)
	require.Equal(t, session.ActionInit, resp.Action)
	require.Equal(t, session.CodeMissingUserID, resp.ErrorCode)
	require.Contains(t, resp.Error, "no userId")
}

func TestProcess_GetAccepted(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/session",
		bytes.NewBufferString(`{"action":"validate","args":{"sessionId":"ghost"}}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp session.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, session.StateExpired, resp.Payload.State)
}

func TestProcess_FullLifecycle(t *testing.T) {
	router := newTestRouter()

	// init
	resp := post(t, router, `{"action":"init","args":{"userId":"u1"}}`)
	require.Empty(t, resp.Error)
	require.NotNil(t, resp.Payload)
	id := resp.Payload.SessionID
	require.NotEmpty(t, id)
	require.Empty(t, resp.Payload.State)
	require.Equal(t, "u1", resp.Payload.UserID)
	original := resp.Payload.LoginTimestamp
	require.NotNil(t, original)

	// validate -> ACTIVE
	resp = post(t, router, `{"action":"validate","args":{"sessionId":"`+id+`"}}`)
	require.Equal(t, session.StateActive, resp.Payload.State)

	// extend -> fresh timestamp, same user
	resp = post(t, router, `{"action":"extend","args":{"sessionId":"`+id+`"}}`)
	require.Empty(t, resp.Error)
	require.Equal(t, "u1", resp.Payload.UserID)
	require.False(t, resp.Payload.LoginTimestamp.Before(*original))

	// validate -> still ACTIVE
	resp = post(t, router, `{"action":"validate","args":{"sessionId":"`+id+`"}}`)
	require.Equal(t, session.StateActive, resp.Payload.State)

	// terminate -> plain sessionId payload
	resp = post(t, router, `{"action":"terminate","args":{"sessionId":"`+id+`"}}`)
	require.Empty(t, resp.Error)
	require.Equal(t, id, resp.Payload.SessionID)
	require.Empty(t, resp.Payload.Message)

	// validate after terminate -> EXPIRED
	resp = post(t, router, `{"action":"validate","args":{"sessionId":"`+id+`"}}`)
	require.Equal(t, session.StateExpired, resp.Payload.State)

	// terminate again -> informational, still no error
	resp = post(t, router, `{"action":"terminate","args":{"sessionId":"`+id+`"}}`)
	require.Empty(t, resp.Error)
	require.Zero(t, resp.ErrorCode)
	require.Contains(t, resp.Payload.Message, "nothing to terminate")
}

func TestProcess_ExtendUnknownSession(t *testing.T) {
	router := newTestRouter()

	resp := post(t, router, `{"action":"extend","args":{"sessionId":"ghost"}}`)
	require.Equal(t, session.CodeExtendSessionNotFound, resp.ErrorCode)
	require.Contains(t, resp.Error, "please relogin")
	require.NotNil(t, resp.Payload)
	require.Equal(t, "ghost", resp.Payload.SessionID)
}

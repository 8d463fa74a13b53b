package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"session-service/internal/session"

	"github.com/gin-gonic/gin"
)

// Handler exposes the session lifecycle engine over HTTP. The protocol
// reports failures in-band: every well-formed exchange answers HTTP 200
// and carries any error in the response body's error/errorCode fields.
type Handler struct {
	engine *session.Engine
}

func NewHandler(engine *session.Engine) *Handler {
	return &Handler{engine: engine}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/session", h.process)
	r.GET("/session", h.process)
}

func (h *Handler) process(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusOK, missingBody())
		return
	}

	// An absent, malformed, or empty ({}) body is the same defect to
	// the caller: there is nothing to act on.
	var fields map[string]json.RawMessage
	if len(body) == 0 || json.Unmarshal(body, &fields) != nil || len(fields) == 0 {
		c.JSON(http.StatusOK, missingBody())
		return
	}

	var req session.Request
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusOK, missingBody())
		return
	}

	if req.Action == "" {
		c.JSON(http.StatusOK, session.Response{
			Error:     "Invalid request: missing action",
			ErrorCode: session.CodeInvalidAction,
		})
		return
	}

	outcome := h.engine.Do(c.Request.Context(), req.Action, req.Args)
	c.JSON(http.StatusOK, outcome.Response())
}

func missingBody() session.Response {
	return session.Response{
		Error:     "Invalid request: missing request body",
		ErrorCode: session.CodeMissingRequestBody,
	}
}

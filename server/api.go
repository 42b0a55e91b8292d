package server

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/portfolioai/ai/agents/orchestrator"
	"github.com/hrygo/portfolioai/ai/knowledge"
	"github.com/hrygo/portfolioai/ai/session"
	"github.com/hrygo/portfolioai/internal/version"
)

type workflowView struct {
	orchestrator.Workflow
	Agents []orchestrator.AgentInfo `json:"agents"`
}

type sessionView struct {
	ID         string    `json:"id"`
	Workflow   string    `json:"workflow"`
	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active"`
	Turns      int       `json:"turns"`
}

type createSessionRequest struct {
	Workflow string `json:"workflow"`
}

type messageRequest struct {
	Message string `json:"message"`
}

func viewOf(s *session.Session) sessionView {
	return sessionView{
		ID:         s.ID(),
		Workflow:   s.Workflow(),
		CreatedAt:  s.CreatedAt(),
		LastActive: s.LastActive(),
		Turns:      len(s.History()),
	}
}

func (s *Server) registerAPI(g *echo.Group) {
	g.GET("/workflows", s.listWorkflows)
	g.GET("/sessions", s.listSessions)
	g.POST("/sessions", s.createSession)
	g.GET("/sessions/:id", s.getSession)
	g.DELETE("/sessions/:id", s.deleteSession)
	g.GET("/sessions/:id/messages", s.listMessages)
	g.POST("/sessions/:id/messages", s.postMessage)
	g.DELETE("/sessions/:id/messages", s.clearMessages)
	g.POST("/sessions/:id/uploads", s.uploadEvents)
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":   "ok",
		"version":  version.String(),
		"sessions": s.Sessions.Len(),
	})
}

func (s *Server) listWorkflows(c echo.Context) error {
	wfs := s.Registry.Workflows()
	out := make([]workflowView, 0, len(wfs))
	for _, wf := range wfs {
		out = append(out, workflowView{Workflow: wf, Agents: s.Registry.AgentsFor(wf.ID)})
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) listSessions(c echo.Context) error {
	sessions := s.Sessions.List()
	out := make([]sessionView, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, viewOf(sess))
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) createSession(c echo.Context) error {
	var req createSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	workflow := strings.TrimSpace(req.Workflow)
	if workflow == "" {
		workflow = s.defaultWorkflow()
	}
	sess, err := s.Sessions.Create(workflow)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, viewOf(sess))
}

func (s *Server) getSession(c echo.Context) error {
	sess, err := s.Sessions.Get(c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, viewOf(sess))
}

func (s *Server) deleteSession(c echo.Context) error {
	if err := s.Sessions.Delete(c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) listMessages(c echo.Context) error {
	sess, err := s.Sessions.Get(c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	turns := sess.History()
	if turns == nil {
		turns = []session.Turn{}
	}
	return c.JSON(http.StatusOK, turns)
}

func (s *Server) postMessage(c echo.Context) error {
	sess, err := s.Sessions.Get(c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	var req messageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	reply, err := sess.Send(c.Request().Context(), req.Message)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, reply)
}

func (s *Server) clearMessages(c echo.Context) error {
	sess, err := s.Sessions.Get(c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	if err := sess.Clear(); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// uploadEvents accepts a CSV or JSON body. The Content-Type decides; when it
// is neither, a body starting with '[' or '{' is taken as JSON.
func (s *Server) uploadEvents(c echo.Context) error {
	sess, err := s.Sessions.Get(c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "failed to read upload")
	}

	events, err := parseUpload(c.Request().Header.Get(echo.HeaderContentType), body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	total := sess.Upload(events)
	return c.JSON(http.StatusOK, map[string]int{"added": len(events), "total": total})
}

func parseUpload(contentType string, body []byte) ([]knowledge.Event, error) {
	switch {
	case strings.Contains(contentType, "csv"):
		return knowledge.ParseEventsCSV(bytes.NewReader(body))
	case strings.Contains(contentType, "json"):
		return knowledge.ParseEventsJSON(body)
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') {
		return knowledge.ParseEventsJSON(trimmed)
	}
	return knowledge.ParseEventsCSV(bytes.NewReader(body))
}

package server

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/labstack/echo/v4"

	"github.com/hrygo/portfolioai/ai/agents/orchestrator"
	"github.com/hrygo/portfolioai/ai/session"
)

//go:embed templates/*.html
var templateFiles embed.FS

type pageRenderer struct {
	tmpl *template.Template
}

func newPageRenderer() (*pageRenderer, error) {
	tmpl, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &pageRenderer{tmpl: tmpl}, nil
}

func (p *pageRenderer) render(c echo.Context, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	return c.HTMLBlob(status, buf.Bytes())
}

type indexPage struct {
	Title     string
	Workflows []orchestrator.Workflow
}

type turnView struct {
	session.Turn
	HTML template.HTML
	When string
}

type chatPage struct {
	Title     string
	SessionID string
	Workflow  orchestrator.Workflow
	Turns     []turnView
	Error     string
}

func (s *Server) registerChat(e *echo.Echo) {
	e.GET("/", s.indexPage)
	e.POST("/chat", s.startChat)
	e.GET("/chat/:id", s.chatPage)
	e.POST("/chat/:id", s.chatSend)
	e.POST("/chat/:id/clear", s.chatClear)
}

func (s *Server) indexPage(c echo.Context) error {
	return s.pages.render(c, http.StatusOK, "index", indexPage{
		Title:     "Portfolio assistant",
		Workflows: s.Registry.Workflows(),
	})
}

func (s *Server) startChat(c echo.Context) error {
	workflow := c.FormValue("workflow")
	if workflow == "" {
		workflow = s.defaultWorkflow()
	}
	sess, err := s.Sessions.Create(workflow)
	if err != nil {
		return httpError(err)
	}
	return c.Redirect(http.StatusSeeOther, "/chat/"+sess.ID())
}

func (s *Server) chatPage(c echo.Context) error {
	sess, err := s.Sessions.Get(c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return s.renderChat(c, http.StatusOK, sess, "")
}

// chatSend answers a form post. Input and rate-limit errors are shown on
// the page with the matching status instead of a bare error.
func (s *Server) chatSend(c echo.Context) error {
	sess, err := s.Sessions.Get(c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	if _, err := sess.Send(c.Request().Context(), c.FormValue("message")); err != nil {
		var he *echo.HTTPError
		if errors.As(httpError(err), &he) && he.Code != http.StatusInternalServerError {
			return s.renderChat(c, he.Code, sess, err.Error())
		}
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/chat/"+sess.ID())
}

func (s *Server) chatClear(c echo.Context) error {
	sess, err := s.Sessions.Get(c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	if err := sess.Clear(); err != nil {
		return httpError(err)
	}
	return c.Redirect(http.StatusSeeOther, "/chat/"+sess.ID())
}

func (s *Server) renderChat(c echo.Context, status int, sess *session.Session, errMsg string) error {
	wf, _ := s.Registry.Workflow(sess.Workflow())
	history := sess.History()
	turns := make([]turnView, len(history))
	for i, t := range history {
		turns[i] = turnView{Turn: t, HTML: renderMarkdown(t.Content), When: humanize.Time(t.CreatedAt)}
	}
	return s.pages.render(c, status, "chat", chatPage{
		Title:     wf.Name,
		SessionID: sess.ID(),
		Workflow:  wf,
		Turns:     turns,
		Error:     errMsg,
	})
}

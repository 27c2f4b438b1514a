package web

import (
	"embed"
	"html/template"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lockievisual/studio-portal/internal/models"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

var templateFuncs = template.FuncMap{
	"allowedActions": models.AllowedActions,
	"isTerminal":     models.IsTerminal,
	"fmtDate": func(t time.Time) string {
		if t.IsZero() {
			return "—"
		}
		return t.Format("Jan 2, 2006")
	},
	"fmtDateTime": func(t time.Time) string {
		if t.IsZero() {
			return "—"
		}
		return t.Format("Jan 2, 2006 15:04")
	},
}

func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.tmpl")
}

// render wraps c.HTML with the keys every page expects: the signed-in
// user, pending flash messages and the auto-dismiss interval.
func (s *Server) render(c *gin.Context, status int, page, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title
	data["FlashTTLMillis"] = s.center.TTL().Milliseconds()

	if claims, ok := currentSession(c); ok {
		data["User"] = claims
		data["Flash"] = s.center.Drain(claims.SessionID)
	} else {
		data["Flash"] = s.center.Drain(anonFlashKey(c))
	}

	c.HTML(status, page, data)
}

// anonFlashKey lets pre-login pages (contact form, failed logins) carry
// flash messages without a session.
func anonFlashKey(c *gin.Context) string {
	return "anon:" + clientIP(c.Request)
}

// flashKey picks the session key when present, the anonymous key
// otherwise.
func (s *Server) flashKey(c *gin.Context) string {
	if claims, ok := currentSession(c); ok {
		return claims.SessionID
	}
	return anonFlashKey(c)
}

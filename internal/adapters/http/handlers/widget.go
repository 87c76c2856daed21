package handlers

import (
	"errors"
	"html/template"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"github.com/jsamuelsen/quote-widget/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-widget/internal/app"
	"github.com/jsamuelsen/quote-widget/internal/platform/logging"
)

// ButtonLabel is the refresh control's label.
const ButtonLabel = "Get New Quote"

// loadingReload is how soon the page reloads while a refresh is in flight.
const loadingReload = time.Second

// Widget is the part of app.QuoteWidget the web host drives.
type Widget interface {
	Snapshot() app.WidgetState
	RequestRefresh() error
	RefreshInterval() time.Duration
}

// WidgetHandler serves the widget as an HTML page and as JSON.
type WidgetHandler struct {
	widget Widget
	page   *template.Template
}

// NewWidgetHandler creates a handler for w.
func NewWidgetHandler(w Widget) *WidgetHandler {
	return &WidgetHandler{
		widget: w,
		page:   template.Must(template.New("widget").Parse(widgetPage)),
	}
}

// pageData is the template input for the widget page.
type pageData struct {
	State         app.WidgetState
	Loading       bool
	HasQuote      bool
	Placeholder   string
	ButtonLabel   string
	ReloadSeconds int
}

// Page handles GET /. It renders the same three branches as every other
// renderer and reloads itself so the page follows the refresh timer.
func (h *WidgetHandler) Page(c *gin.Context) {
	state := h.widget.Snapshot()
	branch := state.Branch()

	reload := h.widget.RefreshInterval()
	if branch == app.BranchLoading {
		reload = loadingReload
	}

	c.Header("Cache-Control", "no-store")
	c.Render(http.StatusOK, render.HTML{
		Template: h.page,
		Name:     "widget",
		Data: pageData{
			State:         state,
			Loading:       branch == app.BranchLoading,
			HasQuote:      branch == app.BranchQuote,
			Placeholder:   app.Placeholder,
			ButtonLabel:   ButtonLabel,
			ReloadSeconds: int(math.Ceil(reload.Seconds())),
		},
	})
}

// RefreshForm handles POST /refresh, the page's refresh button. A refused
// refresh is not an error for the page; it redirects back either way.
func (h *WidgetHandler) RefreshForm(c *gin.Context) {
	if err := h.widget.RequestRefresh(); err != nil && !errors.Is(err, app.ErrRefreshInProgress) {
		logging.FromContext(c.Request.Context()).WarnContext(c.Request.Context(),
			"refresh request refused", "error", err)
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// GetWidget handles GET /api/v1/widget.
func (h *WidgetHandler) GetWidget(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, dto.NewWidgetResponse(h.widget.Snapshot()))
}

// PostRefresh handles POST /api/v1/widget/refresh. It answers 202 with the
// loading state when the refresh starts and 409 while one is in flight.
func (h *WidgetHandler) PostRefresh(c *gin.Context) {
	if err := h.widget.RequestRefresh(); err != nil {
		RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, dto.NewWidgetResponse(h.widget.Snapshot()))
}

// RegisterPageRoutes registers the HTML routes on rg. refresh runs before
// the refresh form handler, typically a rate limiter.
func (h *WidgetHandler) RegisterPageRoutes(rg *gin.RouterGroup, refresh ...gin.HandlerFunc) {
	rg.GET("/", h.Page)
	rg.POST("/refresh", append(refresh, h.RefreshForm)...)
}

// RegisterAPIRoutes registers the JSON routes on rg. refresh runs before
// the refresh handler.
func (h *WidgetHandler) RegisterAPIRoutes(rg *gin.RouterGroup, refresh ...gin.HandlerFunc) {
	widget := rg.Group("/widget")
	widget.GET("", h.GetWidget)
	widget.POST("/refresh", append(refresh, h.PostRefresh)...)
}

const widgetPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta http-equiv="refresh" content="{{.ReloadSeconds}}">
<title>Quote Widget</title>
<style>
body{margin:0;min-height:100vh;display:flex;align-items:center;justify-content:center;background:#f3f4f6;font-family:system-ui,sans-serif}
.card{background:#fff;border-radius:1rem;box-shadow:0 10px 15px rgba(0,0,0,.1);padding:1.5rem;max-width:32rem;text-align:center}
.content{font-size:1.25rem;font-weight:600;color:#1f2937}
.author,.placeholder{color:#6b7280}
.author{margin-top:1rem}
.loading{height:10rem;display:flex;align-items:center;justify-content:center}
.spinner{width:2.5rem;height:2.5rem;border-radius:50%;border-top:4px solid #3b82f6;animation:spin 1s linear infinite}
@keyframes spin{to{transform:rotate(360deg)}}
button{margin-top:1.5rem;padding:.5rem 1rem;border:0;border-radius:9999px;background:#3b82f6;color:#fff;cursor:pointer}
button:hover{background:#2563eb}
button:disabled{opacity:.5;cursor:default}
</style>
</head>
<body>
<main class="card" data-view="{{.State.Branch}}">
{{- if .Loading}}
<div class="loading" role="status" aria-label="Loading"><div class="spinner"></div></div>
{{- else if .HasQuote}}
<p class="content">&ldquo;{{.State.Quote.Content}}&rdquo;</p>
<p class="author">&mdash; {{.State.Quote.Author}}</p>
{{- else}}
<p class="placeholder">{{.Placeholder}}</p>
{{- end}}
<form method="post" action="/refresh">
<button type="submit"{{if .Loading}} disabled{{end}}>{{.ButtonLabel}}</button>
</form>
</main>
</body>
</html>
`

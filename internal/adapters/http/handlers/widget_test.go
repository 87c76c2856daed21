package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-widget/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-widget/internal/app"
	"github.com/jsamuelsen/quote-widget/internal/domain"
)

type fakeWidget struct {
	state        app.WidgetState
	refreshErr   error
	refreshCalls int
}

func (f *fakeWidget) Snapshot() app.WidgetState { return f.state }

func (f *fakeWidget) RequestRefresh() error {
	f.refreshCalls++
	if f.refreshErr != nil {
		return f.refreshErr
	}
	f.state.Loading = true
	return nil
}

func (f *fakeWidget) RefreshInterval() time.Duration { return 30 * time.Second }

func newWidgetRouter(w Widget) *gin.Engine {
	h := NewWidgetHandler(w)
	router := gin.New()
	h.RegisterPageRoutes(&router.RouterGroup)
	h.RegisterAPIRoutes(router.Group("/api/v1"))
	return router
}

func serve(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestWidgetHandler_Page(t *testing.T) {
	tests := []struct {
		name     string
		state    app.WidgetState
		contains []string
		excludes []string
	}{
		{
			name:     "placeholder",
			state:    app.WidgetState{},
			contains: []string{app.Placeholder, ButtonLabel, `content="30"`, `data-view="placeholder"`},
			excludes: []string{`type="submit" disabled`},
		},
		{
			name:     "quote",
			state:    app.WidgetState{Quote: &domain.Quotation{Content: "Be water.", Author: "Bruce Lee"}},
			contains: []string{"&ldquo;Be water.&rdquo;", "&mdash; Bruce Lee", `data-view="quote"`},
			excludes: []string{app.Placeholder, `type="submit" disabled`},
		},
		{
			name:     "loading",
			state:    app.WidgetState{Loading: true, Quote: &domain.Quotation{Content: "Be water.", Author: "Bruce Lee"}},
			contains: []string{`aria-label="Loading"`, `type="submit" disabled`, `content="1"`, ButtonLabel},
			excludes: []string{"Be water.", app.Placeholder},
		},
		{
			name:     "quote is escaped",
			state:    app.WidgetState{Quote: &domain.Quotation{Content: "<script>alert(1)</script>", Author: "A & B"}},
			contains: []string{"&lt;script&gt;alert(1)&lt;/script&gt;", "A &amp; B"},
			excludes: []string{"<script>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(newWidgetRouter(&fakeWidget{state: tt.state}), http.MethodGet, "/")

			assert.Equal(t, http.StatusOK, w.Code)
			assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/html"))
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

			body := w.Body.String()
			for _, s := range tt.contains {
				assert.Contains(t, body, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, body, s)
			}
		})
	}
}

func TestWidgetHandler_RefreshForm(t *testing.T) {
	tests := []struct {
		name       string
		refreshErr error
	}{
		{name: "accepted"},
		{name: "in progress", refreshErr: app.ErrRefreshInProgress},
		{name: "inactive", refreshErr: app.ErrWidgetInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fw := &fakeWidget{refreshErr: tt.refreshErr}
			w := serve(newWidgetRouter(fw), http.MethodPost, "/refresh")

			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, "/", w.Header().Get("Location"))
			assert.Equal(t, 1, fw.refreshCalls)
		})
	}
}

func TestWidgetHandler_GetWidget(t *testing.T) {
	fw := &fakeWidget{state: app.WidgetState{Quote: &domain.Quotation{Content: "Be water.", Author: "Bruce Lee"}}}
	w := serve(newWidgetRouter(fw), http.MethodGet, "/api/v1/widget")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`{"quote":{"content":"Be water.","author":"Bruce Lee"},"loading":false,"canRefresh":true,"view":"quote"}`,
		w.Body.String())
}

func TestWidgetHandler_PostRefresh(t *testing.T) {
	tests := []struct {
		name           string
		refreshErr     error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "accepted",
			expectedStatus: http.StatusAccepted,
		},
		{
			name:           "in progress",
			refreshErr:     app.ErrRefreshInProgress,
			expectedStatus: http.StatusConflict,
			expectedCode:   dto.ErrorCodeConflict,
		},
		{
			name:           "inactive",
			refreshErr:     app.ErrWidgetInactive,
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   dto.ErrorCodeUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fw := &fakeWidget{refreshErr: tt.refreshErr}
			w := serve(newWidgetRouter(fw), http.MethodPost, "/api/v1/widget/refresh")

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedCode == "" {
				var resp dto.WidgetResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.True(t, resp.Loading)
				assert.False(t, resp.CanRefresh)
				return
			}

			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedCode, resp.Error.Code)
		})
	}
}

func TestWidgetHandler_RefreshMiddlewareRuns(t *testing.T) {
	fw := &fakeWidget{}
	h := NewWidgetHandler(fw)
	router := gin.New()

	reject := func(c *gin.Context) {
		c.AbortWithStatus(http.StatusTooManyRequests)
	}
	h.RegisterPageRoutes(&router.RouterGroup, reject)
	h.RegisterAPIRoutes(router.Group("/api/v1"), reject)

	assert.Equal(t, http.StatusTooManyRequests, serve(router, http.MethodPost, "/refresh").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(router, http.MethodPost, "/api/v1/widget/refresh").Code)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/api/v1/widget").Code)
	assert.Zero(t, fw.refreshCalls)
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{name: "nil", err: nil, expectedStatus: http.StatusOK},
		{name: "in progress", err: app.ErrRefreshInProgress, expectedStatus: http.StatusConflict, expectedCode: dto.ErrorCodeConflict},
		{name: "inactive", err: app.ErrWidgetInactive, expectedStatus: http.StatusServiceUnavailable, expectedCode: dto.ErrorCodeUnavailable},
		{name: "wrapped in progress", err: errors.Join(errors.New("ctx"), app.ErrRefreshInProgress), expectedStatus: http.StatusConflict, expectedCode: dto.ErrorCodeConflict},
		{name: "unknown", err: errors.New("boom"), expectedStatus: http.StatusInternalServerError, expectedCode: dto.ErrorCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := MapError(tt.err)

			assert.Equal(t, tt.expectedStatus, status)
			if tt.expectedCode == "" {
				assert.Nil(t, resp)
				return
			}
			require.NotNil(t, resp)
			assert.Equal(t, tt.expectedCode, resp.Error.Code)
		})
	}
}

func TestMapError_HidesInternalDetails(t *testing.T) {
	_, resp := MapError(errors.New("dial tcp 10.0.0.1:443: secret"))

	assert.Equal(t, "an internal error occurred", resp.Error.Message)
}

func TestRespondWithErrorCode(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/missing", nil)

	RespondWithErrorCode(c, dto.ErrorCodeNotFound, "route not found")

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrorCodeNotFound, resp.Error.Code)
	assert.Empty(t, resp.TraceID)
}

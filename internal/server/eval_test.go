package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-reldate/internal/config"
)

func evalRequest(t *testing.T, srv *CalendarServer, query url.Values) (int, evalResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, config.RouteEval+"?"+query.Encode(), nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	resp := w.Result()
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, config.MimeJSON, resp.Header.Get(config.HeaderContentType))
	assert.Equal(t, config.CacheControlNoStore, resp.Header.Get(config.HeaderCacheControl))

	var body evalResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestHandleEval(t *testing.T) {
	srv := NewCalendarServer("0")
	srv.Now = func() time.Time { return time.Date(2020, 7, 19, 9, 30, 0, 0, time.UTC) }

	tests := []struct {
		name        string
		query       url.Values
		result      string
		description string
	}{
		{
			name:        "Explicit anchor",
			query:       url.Values{config.QueryExpr: {">3sat>nov"}, config.QueryAnchor: {"2020-07-19"}},
			result:      "2020-11-08T00:00:00Z",
			description: "Current or next third Saturday Current or next November",
		},
		{
			name:        "Default anchor",
			query:       url.Values{config.QueryExpr: {"^d+1D"}},
			result:      "2020-07-20T00:00:00Z",
			description: "Start of Day Add 1 Weekday",
		},
		{
			name:   "Empty expression is the identity",
			query:  url.Values{config.QueryExpr: {""}},
			result: "2020-07-19T09:30:00Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := evalRequest(t, srv, tt.query)

			assert.Equal(t, http.StatusOK, status)
			assert.Empty(t, body.Error)
			assert.Equal(t, tt.result, body.Result)
			assert.Equal(t, tt.description, body.Description)
		})
	}
}

func TestHandleEval_Errors(t *testing.T) {
	srv := NewCalendarServer("0")

	status, body := evalRequest(t, srv, url.Values{})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, config.ErrExprRequired, body.Error)

	status, body = evalRequest(t, srv, url.Values{config.QueryExpr: {"+1d"}, config.QueryAnchor: {"yesterday"}})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body.Error, config.ErrAnchorParse)

	status, body = evalRequest(t, srv, url.Values{config.QueryExpr: {"+1d*2d"}})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "*", body.Symbol)
	require.NotNil(t, body.Position)
	assert.Equal(t, 3, *body.Position)
	assert.Contains(t, body.Error, config.ErrUnknownAction)

	status, body = evalRequest(t, srv, url.Values{config.QueryExpr: {"@31d"}, config.QueryAnchor: {"2020-02-10"}})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, body.Error, config.ErrInvalidDate)
	assert.NotEmpty(t, body.Description)
}

func TestHandleEval_MethodNotAllowed(t *testing.T) {
	srv := NewCalendarServer("0")
	req := httptest.NewRequest(http.MethodPost, config.RouteEval+"?expr=%2B1d", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, config.AllowedMethods, w.Header().Get(config.HeaderAllow))
}

package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tartampluch/go-reldate/internal/config"
	"github.com/tartampluch/go-reldate/internal/reldate"
)

// evalResponse is the JSON body of /eval. Parse errors fill Symbol and
// Position.
type evalResponse struct {
	Expression  string `json:"expression"`
	Anchor      string `json:"anchor,omitempty"`
	Result      string `json:"result,omitempty"`
	Description string `json:"description,omitempty"`
	Error       string `json:"error,omitempty"`
	Symbol      string `json:"symbol,omitempty"`
	Position    *int   `json:"position,omitempty"`
}

// handleEval applies the expression in the expr query parameter to the
// anchor parameter, or to the current time.
func (s *CalendarServer) handleEval(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}

	q := r.URL.Query()
	if !q.Has(config.QueryExpr) {
		writeJSON(w, http.StatusBadRequest, evalResponse{Error: config.ErrExprRequired})
		return
	}
	resp := evalResponse{Expression: q.Get(config.QueryExpr)}

	anchor, err := reldate.ParseAnchor(q.Get(config.QueryAnchor), s.Now())
	if err != nil {
		resp.Error = err.Error()
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}
	resp.Anchor = anchor.Format(config.DateFormatRFC3339Nano)

	rd, err := reldate.Parse(resp.Expression)
	if err != nil {
		resp.Error = err.Error()
		var exprErr *reldate.ExpressionError
		if errors.As(err, &exprErr) {
			resp.Symbol = exprErr.Symbol
			resp.Position = &exprErr.Pos
		}
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}
	resp.Description = rd.Description()

	result, err := rd.Apply(anchor)
	if err != nil {
		resp.Error = err.Error()
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}
	resp.Result = result.Format(config.DateFormatRFC3339Nano)

	slog.Debug(config.MsgEvalRequest,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyExpression, resp.Expression,
		config.LogKeyDate, resp.Result,
	)
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlNoStore)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
}

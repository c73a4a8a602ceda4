package middleware

import (
	"context"
	"net/http"

	httputil "salonbook/pkg/http"
	"salonbook/pkg/model"
)

type contextKey string

const RequestIDKey contextKey = "request_id"

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// reject writes the same {ok:false, message} envelope the handlers use.
func reject(w http.ResponseWriter, status int, message string) {
	_ = httputil.WriteJSON(w, status, model.ErrorResponse{Message: message})
}

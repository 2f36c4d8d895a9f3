package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/kenyagreatparty/kgp-backend/pkg/logger"
	"github.com/kenyagreatparty/kgp-backend/pkg/token"
)

type Middleware struct {
	TokenSvc *token.Jwt
	Logger   *logger.Logger
}

func New(tokenSvc *token.Jwt, log *logger.Logger) *Middleware {
	return &Middleware{
		TokenSvc: tokenSvc,
		Logger:   log,
	}
}

func (m *Middleware) apiError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{
		"message": message,
		"status":  code,
	})
}

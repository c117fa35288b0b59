package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/kwadwoankamah/duesflow/pkg/logger"
	"github.com/kwadwoankamah/duesflow/pkg/token"
)

type Middleware struct {
	TokenSvc *token.Jwt
	Logger   *logger.Logger
}

func New(tokenSvc *token.Jwt, log *logger.Logger) *Middleware {
	return &Middleware{TokenSvc: tokenSvc, Logger: log}
}

func (m *Middleware) apiError(w http.ResponseWriter, message string, code int, redirect string, from string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	body := map[string]any{
		"message": message,
		"status":  code,
	}
	// The web client treats redirect/from the way the old route guard did:
	// bounce to redirect and come back to from after login.
	if redirect != "" {
		body["redirect"] = redirect
	}
	if from != "" {
		body["from"] = from
	}

	json.NewEncoder(w).Encode(body)
}

package simulate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yuksel-arslan/SmartCon360-sub007/core/model"
	"github.com/yuksel-arslan/SmartCon360-sub007/core/planstore"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type envelope struct {
	Data  any       `json:"data"`
	Error *apiError `json:"error"`
}

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Data: data})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Error: &apiError{Code: code, Message: message}})
}

func writeEngineError(w http.ResponseWriter, err error) {
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		writeError(w, http.StatusBadRequest, ve.Code, ve.Message)
		return
	}
	if errors.Is(err, context.DeadlineExceeded) {
		writeError(w, http.StatusGatewayTimeout, "timeout", "simulation exceeded the configured time limit")
		return
	}
	writeError(w, http.StatusInternalServerError, "internal", err.Error())
}

func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, planstore.ErrNotFound) {
		writeError(w, http.StatusNotFound, "plan_not_found", "plan not found")
		return
	}
	writeEngineError(w, err)
}

func requireBearer(token string, next http.Handler) http.Handler {
	if token == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+token {
			writeError(w, http.StatusUnauthorized, "unauthorized", "missing or invalid token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Jav1009/community-service-api/internal/domain"
	"go.uber.org/zap"
)

// envelope is the uniform success payload: {success, count?, message?, data?}.
type envelope struct {
	Success bool   `json:"success"`
	Count   *int   `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type errorBody struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

type errorEnvelope struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorEnvelope{
		Success: false,
		Error:   errorBody{Message: message, Status: status},
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"success":false,"error":{"message":"Internal Server Error","status":500}}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeDomainError maps a classified error to its HTTP status and emits the
// uniform error envelope. Unclassified errors are logged and reported as a
// generic 500 so internals never leak into responses.
func writeDomainError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		logger.Error("unhandled error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	status := statusForKind(de.Kind)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.Error(err))
	} else {
		logger.Warn("request rejected", zap.Int("status", status), zap.String("reason", de.Message))
	}
	writeError(w, status, de.Message)
}

func statusForKind(kind domain.Kind) int {
	switch kind {
	case domain.KindInvalidInput, domain.KindInvalidOperation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

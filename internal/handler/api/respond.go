package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/njordlabs/njord/internal/domain"
	"github.com/njordlabs/njord/internal/middleware"
)

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError writes the error as a structured JSON envelope, mapping the
// domain error code to an HTTP status. Internal errors are logged with their
// full chain but surface only a generic message.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)
	status := errorCodeToHTTPStatus(code)

	logger := middleware.GetLogger(r.Context())
	if status >= 500 {
		logger.Error("request failed", "error", err, "code", code)
	} else {
		logger.Info("request rejected", "error", err, "code", code)
	}

	respondJSON(w, status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": domain.ErrorMessage(err),
		},
	})
}

// errorCodeToHTTPStatus maps domain error codes to HTTP status codes.
func errorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case domain.EFORBIDDEN:
		return http.StatusForbidden
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON parses the request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.Invalid("api.decode", "Invalid JSON request body")
	}
	return nil
}

// parseUUIDField parses a UUID from a request body field.
func parseUUIDField(raw, name string) (pgtype.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return pgtype.UUID{}, domain.Invalid("api.decode", "Invalid "+name)
	}
	return pgtype.UUID{Bytes: id, Valid: true}, nil
}

// pathUUID parses a UUID path parameter.
func pathUUID(r *http.Request, name string) (pgtype.UUID, error) {
	raw := r.PathValue(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return pgtype.UUID{}, domain.Invalid("api.path", "Invalid "+name)
	}
	return pgtype.UUID{Bytes: id, Valid: true}, nil
}

// uuidString formats a pgtype.UUID for JSON output.
func uuidString(id pgtype.UUID) string {
	if !id.Valid {
		return ""
	}
	return uuid.UUID(id.Bytes).String()
}

package http

import (
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"
)

// ErrorResponse represents a JSON error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Response renders an endpoint result onto the response writer.
type Response func(w http.ResponseWriter, r *http.Request) error

// JSON returns a Response that writes data as JSON with the given status.
func JSON(code int, data any) Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		return WriteJSON(w, code, data)
	}
}

// Text returns a Response that writes a plain text body.
func Text(code int, body string) Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(code)
		_, err := w.Write([]byte(body))
		return err
	}
}

// NoContent returns a 204 Response.
func NoContent() Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(http.StatusNoContent)
		return nil
	}
}

// Error returns a Response that writes a JSON error body.
func Error(code int, errCode, message string) Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		WriteError(w, code, errCode, message)
		return nil
	}
}

// WriteError writes a JSON error response
func WriteError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   errCode,
		Message: message,
	}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// HandleError writes the default error response for err's kind.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	kind := KindOf(err)
	if kind == KindGeneric {
		slog.Error("request error", "error", err)
	} else {
		slog.Debug("request rejected", "kind", kind, "error", err)
	}

	_ = DefaultErrors().Respond(kind)(w, r)
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, code int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(data)
}

package http

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/sagarc03/endpoint"
)

const maxFormMemory = 32 << 20

// serve runs the pipeline for one request: permission check, body
// acquisition, context assembly, handler invocation. Any panic is recovered
// here and answered with the generic error response, unless the response
// had already started, in which case it is only logged.
func (d *Dispatcher) serve(method string, rw http.ResponseWriter, r *http.Request) {
	logger := d.logger.With(
		"method", method,
		"path", r.URL.Path,
		"request_id", uuid.NewString(),
	)

	w := &trackingWriter{ResponseWriter: rw}
	defer func() {
		if rec := recover(); rec != nil {
			if w.wroteHeader {
				logger.Error("endpoint panicked after response started", "panic", rec)
				return
			}
			logger.Error("endpoint panicked", "panic", rec)
			d.write(w, r, logger, d.responder.Respond(KindGeneric))
		}
	}()

	handler, ok := d.handlers[method]
	if !ok {
		d.write(w, r, logger, d.responder.Respond(KindNotAllowed))
		return
	}

	// MaxBytesReader needs the unwrapped writer to close oversized connections.
	d.write(w, r, logger, d.run(method, handler, rw, r, logger))
}

func (d *Dispatcher) run(method string, handler HandlerFunc, w http.ResponseWriter, r *http.Request, logger *slog.Logger) Response {
	cfg := d.Config(method)
	token := tokenFromRequest(r)

	if cfg.Role >= 0 {
		if err := d.auth.CheckUserPermission(token, cfg.Role); err != nil {
			logger.Info("permission denied", "required_role", cfg.Role, "err", err)
			return d.responder.Respond(KindOf(err))
		}
	}

	var body any
	if hasBody(method) {
		var err error
		body, err = d.acquireBody(w, r, cfg.Body, logger)
		if err != nil {
			return d.bodyFailure(err, logger)
		}
	}

	rc := newRequestContext(r, body)
	user := endpoint.UserData{
		Identity:    d.auth.GetUserData(token),
		Personality: personalityFromRequest(r),
	}

	resp, err := handler(r.Context(), rc, user)
	if err != nil {
		kind := KindOf(err)
		if kind == KindGeneric {
			logger.Error("handler failed", "err", err)
		} else {
			logger.Info("handler rejected request", "kind", kind, "err", err)
		}
		return d.responder.Respond(kind)
	}

	if resp == nil {
		return NoContent()
	}
	return resp
}

func (d *Dispatcher) write(w http.ResponseWriter, r *http.Request, logger *slog.Logger, resp Response) {
	if err := resp(w, r); err != nil {
		logger.Error("failed to write response", "err", err)
	}
}

func (d *Dispatcher) acquireBody(w http.ResponseWriter, r *http.Request, enc BodyEncoding, logger *slog.Logger) (any, error) {
	if d.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, d.maxBodyBytes)
	}

	switch enc := enc.(type) {
	case FormBody:
		form, err := readForm(r)
		if err != nil {
			return nil, err
		}
		return form, nil
	case JSONBody:
		return readJSON(r, enc.Schema, logger)
	default:
		return readJSON(r, nil, logger)
	}
}

func readForm(r *http.Request) (url.Values, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			return nil, fmt.Errorf("parse multipart form: %w", err)
		}
		return r.PostForm, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("parse form: %w", err)
	}
	return r.PostForm, nil
}

// readJSON decodes the body. A missing or malformed body is not fatal: it is
// logged and replaced by an empty object, and the schema is skipped.
func readJSON(r *http.Request, schema endpoint.SchemaValidator, logger *slog.Logger) (any, error) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		logger.Warn("request has no json body")
		return map[string]any{}, nil
	}

	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		logger.Warn("request body is not valid json", "err", err)
		return map[string]any{}, nil
	}

	if schema == nil {
		return decoded, nil
	}

	parsed, err := schema.Parse(decoded)
	if err != nil {
		return nil, err
	}
	return parsed, nil
}

func (d *Dispatcher) bodyFailure(err error, logger *slog.Logger) Response {
	var validationErr *endpoint.ValidationError
	switch {
	case errors.As(err, &validationErr):
		logger.Warn("request body failed validation", "err", err)
		if d.exposeValidation {
			return Error(http.StatusBadRequest, "validation_failed", validationErr.Message)
		}
	case errors.Is(err, endpoint.ErrUnexpectedValidation):
		logger.Error("unexpected validation failure", "err", err)
	default:
		logger.Error("failed to acquire request body", "err", err)
	}

	return d.responder.Respond(KindGeneric)
}

// trackingWriter records whether the status line has been sent.
type trackingWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (w *trackingWriter) WriteHeader(code int) {
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *trackingWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *trackingWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

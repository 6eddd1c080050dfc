// Package response holds the envelope every service returns:
// {status, message, ...payload}. Handlers copy Status into the HTTP status.
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/apperr"
)

type Payload map[string]any

type Result struct {
	Status  int
	Message string
	Payload Payload
}

func (r Result) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(r.Payload)+2)
	for k, v := range r.Payload {
		m[k] = v
	}
	m["status"] = r.Status
	m["message"] = r.Message
	return json.Marshal(m)
}

// Get returns a payload value, mostly useful in tests.
func (r Result) Get(key string) any {
	if r.Payload == nil {
		return nil
	}
	return r.Payload[key]
}

func OK(message string, payload Payload) Result {
	return Result{Status: http.StatusOK, Message: message, Payload: payload}
}

func New(status int, message string, payload Payload) Result {
	return Result{Status: status, Message: message, Payload: payload}
}

func BadRequest(message string) Result {
	return Result{Status: http.StatusBadRequest, Message: message}
}

// InternalError never carries any detail of the underlying failure.
func InternalError() Result {
	return Result{Status: http.StatusInternalServerError, Message: "Internal Server Error"}
}

// FromError turns an error into an envelope. Errors from the apperr taxonomy
// keep their public message; anything else is logged and becomes a bare 500.
func FromError(err error) Result {
	e, ok := apperr.As(err)
	if !ok || e.Kind == apperr.Internal {
		slog.Error("request failed", "err", err)
		return InternalError()
	}

	res := Result{Status: e.Status(), Message: e.Message}
	if len(e.Fields) > 0 {
		res.Payload = Payload{"errors": e.Fields}
	}
	return res
}

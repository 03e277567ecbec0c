package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// HTTPError indicates the service answered with a non-2xx status.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// IsHTTPStatus reports whether err is an *HTTPError with the given status.
func IsHTTPStatus(err error, status int) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.Status == status
}

// errorBody is the optional JSON error document returned by the service.
type errorBody struct {
	Error string `json:"error"`
}

// newHTTPError builds an HTTPError from a failed response. The message comes
// from a JSON {"error": "..."} body when present, otherwise a generic
// status-coded message prefixed with action.
func newHTTPError(resp *http.Response, action string) *HTTPError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil && strings.TrimSpace(body.Error) != "" {
		return &HTTPError{Status: resp.StatusCode, Message: body.Error}
	}
	return &HTTPError{
		Status:  resp.StatusCode,
		Message: fmt.Sprintf("%s failed (status %d)", action, resp.StatusCode),
	}
}

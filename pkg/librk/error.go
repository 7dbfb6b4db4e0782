package librk

import (
	"encoding/json"
	"io"
	"net/http"
)

// An APIError reprensents an HTTP error returned by the resource server.
// It is the only failure kind surfaced to the user: its message is displayed verbatim.
type APIError struct {
	StatusCode int
	Err        struct {
		Tag     string `json:"tag"`
		Message string `json:"message"`
	} `json:"error"`
}

func parseAPIError(r io.Reader, code int) error {
	var apierr APIError
	dec := json.NewDecoder(r)
	if err := dec.Decode(&apierr); err != nil || apierr.Err.Message == "" {
		apierr.Err.Message = http.StatusText(code)
	}
	apierr.StatusCode = code
	return &apierr
}

func (e *APIError) Error() string {
	return e.Err.Message
}

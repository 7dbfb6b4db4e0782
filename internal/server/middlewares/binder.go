package middlewares

import (
	"bufio"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrEmptyBody is returned when a request expecting a payload has none.
var ErrEmptyBody = echo.NewHTTPError(http.StatusBadRequest, "Request body can't be empty")

type binder struct {
	echo.DefaultBinder
	methodsWithBody map[string]bool
}

// NewBinder returns a binder refusing empty bodies on POST, PUT and PATCH requests.
func NewBinder() echo.Binder {
	return &binder{
		methodsWithBody: map[string]bool{
			http.MethodPost:  true,
			http.MethodPatch: true,
			http.MethodPut:   true,
		},
	}
}

// Bind implements the echo.Bind interface.
func (b *binder) Bind(i any, c echo.Context) error {
	req := c.Request()
	if b.methodsWithBody[req.Method] && empty(req) {
		return ErrEmptyBody
	}
	return b.DefaultBinder.Bind(i, c)
}

// empty reports whether the request has no payload.
// A body of unknown length is peeked and put back in place.
func empty(req *http.Request) bool {
	if req.ContentLength == 0 || req.Body == nil || req.Body == http.NoBody {
		return true
	}
	if req.ContentLength > 0 {
		return false
	}

	r := bufio.NewReader(req.Body)
	_, err := r.Peek(1)
	req.Body = readCloser{Reader: r, Closer: req.Body}
	return err == io.EOF
}

type readCloser struct {
	io.Reader
	io.Closer
}

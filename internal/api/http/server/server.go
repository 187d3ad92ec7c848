package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// HTTPServer wraps an echo instance with address and lifecycle methods.
type HTTPServer struct {
	e    *echo.Echo
	addr string
}

// NewHTTPServer creates an HTTPServer with given echo instance and address.
func NewHTTPServer(e *echo.Echo, addr string) *HTTPServer {
	return &HTTPServer{e: e, addr: addr}
}

// Start starts serving on the configured address. A graceful shutdown is
// not reported as an error.
func (s *HTTPServer) Start() error {
	err := s.e.Start(s.addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop gracefully stops the server.
func (s *HTTPServer) Stop(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

// Address returns the configured listen address.
func (s *HTTPServer) Address() string {
	return s.addr
}

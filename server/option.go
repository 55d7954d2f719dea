package server

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/tdmcp/tdbridge/schema"
)

// Option customizes a Server.
type Option func(*Server)

// WithLogger sets the diagnostic logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithServerInfo overrides the advertised implementation info.
func WithServerInfo(info schema.Implementation) Option {
	return func(s *Server) {
		s.info = info
	}
}

// WithProbeTimeout bounds the backend status probe during initialize.
func WithProbeTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.probeTimeout = timeout
	}
}

// WithShutdownGrace sets the delay between the shutdown response and process
// exit, letting the transport flush the response.
func WithShutdownGrace(grace time.Duration) Option {
	return func(s *Server) {
		s.grace = grace
	}
}

// WithExitFunc overrides process termination, used by tests.
func WithExitFunc(exit func(code int)) Option {
	return func(s *Server) {
		s.exit = exit
	}
}

// Package server implements the MCP-facing side of the bridge: request
// dispatch, the session handshake, and the stdio and SSE transports.
package server

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/tdmcp/tdbridge/schema"
	"github.com/tdmcp/tdbridge/td"
)

// Server holds the wiring shared by all transports.
type Server struct {
	backend      *td.Client
	session      *Session
	info         schema.Implementation
	logger       zerolog.Logger
	probeTimeout time.Duration
	grace        time.Duration
	exit         func(code int)
}

// New creates a Server for the given backend client.
func New(backend *td.Client, options ...Option) *Server {
	ret := &Server{
		backend: backend,
		session: NewSession(),
		info: schema.Implementation{
			Name:    "tdbridge",
			Version: "1.0.0",
		},
		logger:       zerolog.Nop(),
		probeTimeout: 5 * time.Second,
		grace:        100 * time.Millisecond,
		exit:         os.Exit,
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// NewHandler creates a request handler bound to this server's session.
func (s *Server) NewHandler() *Handler {
	return &Handler{Server: s}
}

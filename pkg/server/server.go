package server

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Server wraps http.Server behind a small builder so main can assemble it
// fluently.
type Server struct {
	srv       *http.Server
	errLogger *zap.SugaredLogger
}

func Get() *Server {
	return &Server{
		srv: &http.Server{
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

func (s *Server) WithAddr(addr string) *Server {
	s.srv.Addr = addr
	return s
}

func (s *Server) WithRouter(handler http.Handler) *Server {
	s.srv.Handler = handler
	return s
}

func (s *Server) WithErrLogger(l *zap.SugaredLogger) *Server {
	s.errLogger = l
	return s
}

func (s *Server) Start() error {
	if s.srv.Addr == "" {
		return errors.New("server missing address")
	}
	if s.srv.Handler == nil {
		return errors.New("server missing handler")
	}

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		if s.errLogger != nil {
			s.errLogger.Error(err.Error())
		}
		return err
	}
	return nil
}

func (s *Server) Close() error {
	return s.srv.Close()
}

package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rzbill/rolo/internal/runtime"
	"github.com/rzbill/rolo/internal/server/http/controllers"
	usersvc "github.com/rzbill/rolo/internal/services/users"
	"github.com/rzbill/rolo/internal/ui"
	"github.com/rzbill/rolo/pkg/id"
	logpkg "github.com/rzbill/rolo/pkg/log"
)

type Server struct {
	rt     *runtime.Runtime
	users  *usersvc.Service
	logger logpkg.Logger
	srv    *http.Server
	lis    net.Listener
}

// New constructs the REST gateway over the users service.
func New(rt *runtime.Runtime, svc *usersvc.Service) *Server {
	return NewWithLogger(rt, svc, nil)
}

// NewWithLogger constructs the gateway with a parent logger.
func NewWithLogger(rt *runtime.Runtime, svc *usersvc.Service, logger logpkg.Logger) *Server {
	if logger == nil {
		base := logpkg.NewLogger()
		logger = base.With(logpkg.F("component", "http"))
	} else {
		logger = logger.With(logpkg.F("component", "http"))
	}
	mux := http.NewServeMux()
	s := &Server{rt: rt, users: svc, logger: logger}
	s.srv = &http.Server{Handler: requestID(cors(mux))}

	registry := controllers.NewControllerRegistry(rt, svc)
	registry.RegisterAllRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/ui/", http.StripPrefix("/ui/", http.FileServer(ui.FS())))
	return s
}

// ListenAndServe serves until ctx is canceled, then shuts down with a
// short drain window.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.lis = l
	s.logger.Info("http server listening", logpkg.F("addr", l.Addr().String()))
	errCh := make(chan error, 1)
	go func() { errCh <- s.srv.Serve(l) }()
	select {
	case <-ctx.Done():
		cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(cctx)
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Server) Close() {
	if s.lis != nil {
		_ = s.lis.Close()
	}
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestID stamps every response with an X-Request-Id header and makes
// the id available to request-scoped loggers.
func requestID(next http.Handler) http.Handler {
	gen := id.NewGenerator()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get("X-Request-Id")
		if rid == "" {
			rid = gen.Next().Short()
		}
		w.Header().Set("X-Request-Id", rid)
		ctx := context.WithValue(r.Context(), logpkg.RequestIDKey, rid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

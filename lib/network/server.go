package network

import (
	"context"
	"io"
	"io/ioutil"
	"net"
	"net/http"
	"time"

	ghandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ModernExodus/tontoken/lib/network/api"
	"github.com/ModernExodus/tontoken/lib/network/httpcache"
	"github.com/ModernExodus/tontoken/lib/network/httputils"
	"github.com/ModernExodus/tontoken/lib/token"
)

const (
	UrlPathPrefixMetric = "/metrics"

	DefaultShutdownTimeout = 5 * time.Second
)

type ServerConfig struct {
	Address string

	// RateLimit limits the requests of each client ip, eg. `100-M`.
	RateLimit string

	Cache       httpcache.Adapter
	CacheExpire time.Duration

	// AllowedOrigins enables CORS for the api.
	AllowedOrigins []string

	// AccessLog receives the combined access log; nil discards it.
	AccessLog  io.Writer
	PrintStack bool
}

// Server serves the api of a ledger with the prometheus metrics.
type Server struct {
	config  ServerConfig
	server  *http.Server
	handler http.Handler

	ctx    context.Context
	cancel context.CancelFunc
}

func NewServer(tk *token.Token, config ServerConfig) (*Server, error) {
	router := mux.NewRouter()
	router.Use(RecoverMiddleware(config.PrintStack))
	router.Use(MetricsMiddleware())

	if len(config.RateLimit) > 0 {
		rateLimit, err := RateLimitMiddleware(config.RateLimit)
		if err != nil {
			return nil, err
		}
		router.Use(rateLimit)
	}

	router.Handle(UrlPathPrefixMetric, promhttp.Handler()).Methods("GET")

	apiRouter := router.PathPrefix(api.DefaultURLPrefix).Subrouter()
	if config.Cache != nil {
		client, err := httpcache.NewClient(
			httpcache.WithAdapter(config.Cache),
			httpcache.WithExpire(config.CacheExpire),
			httpcache.WithSkipper(httputils.IsEventStream),
		)
		if err != nil {
			return nil, err
		}
		apiRouter.Use(client.Middleware)
	}
	// the handlers of subrouter are under the prefix
	api.NewNetworkHandlerAPI(tk, "").Routes(apiRouter)

	var handler http.Handler = router
	if len(config.AllowedOrigins) > 0 {
		handler = ghandlers.CORS(
			ghandlers.AllowedOrigins(config.AllowedOrigins),
			ghandlers.AllowedMethods([]string{"GET", "HEAD", "POST", "OPTIONS"}),
			ghandlers.AllowedHeaders([]string{"Content-Type", "X-Requested-With", "Cache-Control", "Accept"}),
		)(handler)
	}

	accessLog := config.AccessLog
	if accessLog == nil {
		accessLog = ioutil.Discard
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		config:  config,
		handler: ghandlers.CombinedLoggingHandler(accessLog, handler),
		ctx:     ctx,
		cancel:  cancel,
	}
	s.server = &http.Server{
		Addr:              config.Address,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       30 * time.Second,
		// event streams end with the server
		BaseContext: func(net.Listener) context.Context {
			return s.ctx
		},
	}

	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start listens and blocks until Stop.
func (s *Server) Start() error {
	log.Info("starting api server", "address", s.config.Address)

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("api server stopped", "error", err)
		return err
	}

	return nil
}

func (s *Server) Stop() {
	s.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown api server", "error", err)
		return
	}
	log.Info("api server stopped")
}

package handler

import (
	"net/http"
	"sync"

	"billiard/config"
	"billiard/di"
	"billiard/shared/logger"
	httpTransport "billiard/transport/http"
)

var (
	server     *httpTransport.HTTP
	serverOnce sync.Once
)

// Handler is the serverless entry point. The dependency graph is built once per warm instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	serverOnce.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		server = di.InitializeService()
	})

	server.ServeHTTP(w, r)
}

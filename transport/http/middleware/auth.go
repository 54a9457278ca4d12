package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"slices"

	"billiard/config"
	"billiard/infras/otel"
	"billiard/permissions"
	"billiard/shared/constant"
	"billiard/shared/failure"
	"billiard/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// Auth guards the routes that permissions.json marks as requiring the API key.
type Auth interface {
	APIKey(http.Handler) http.Handler
}

type authImpl struct {
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthMiddleware(otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) Auth {
	return &authImpl{
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

// APIKey checks the X-API-Key header on guarded routes: a missing key is 401, a wrong one 403.
// Requests on other routes pass through tagged as client traffic.
func (m *authImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "api_key.middleware")
		defer scope.End()

		ctx = context.WithValue(ctx, constant.ContextKeyRequestSource, constant.RequestSourceClient)

		method := request.Method
		path := request.URL.Path

		if rctx := chi.RouteContext(ctx); rctx != nil && rctx.Routes != nil {
			if pattern := rctx.Routes.Find(chi.NewRouteContext(), method, path); pattern != "" {
				path = pattern
			}
		}

		scope.SetAttributes(map[string]any{
			"middleware.type": "api_key",
			"http.path":       path,
			"http.method":     method,
		})

		if !m.guarded(path, method) {
			next.ServeHTTP(writer, request.WithContext(ctx))

			return
		}

		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)
		if apiKey == "" {
			err := failure.Unauthorized("missing API key")
			scope.TraceError(err)
			response.WithError(writer, err)

			return
		}

		if m.cfg.App.APIKey == "" {
			log.Warn().Str("path", path).Msg("no API key configured, rejecting guarded request")
		}

		if m.cfg.App.APIKey == "" || subtle.ConstantTimeCompare([]byte(apiKey), []byte(m.cfg.App.APIKey)) != 1 {
			err := failure.Forbidden("invalid API key")
			scope.TraceError(err)
			response.WithError(writer, err)

			return
		}

		scope.SetAttribute("http.source", constant.RequestSourceInternal)

		ctx = context.WithValue(ctx, constant.ContextKeyRequestSource, constant.RequestSourceInternal)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

func (m *authImpl) guarded(path, method string) bool {
	if m.permission == nil || m.permission.Skip {
		return false
	}

	permission := m.permission.FindPermissions(path, method)
	if permission.Skip {
		return false
	}

	return slices.Contains(permission.Permissions, permissions.APIKey)
}

package chi

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/mediadex/internal/logger"
	"github.com/kailas-cloud/mediadex/internal/usecase/fast"
)

// TierStack builds the tiers of one request.
type TierStack interface {
	Tiers() []fast.Tier
}

type fastKey struct{}

// ContextWithFast stores a request's orchestrator in the context.
func ContextWithFast(ctx context.Context, f *fast.Fast) context.Context {
	return context.WithValue(ctx, fastKey{}, f)
}

// FastFromContext returns the request's orchestrator, or nil.
func FastFromContext(ctx context.Context) *fast.Fast {
	f, _ := ctx.Value(fastKey{}).(*fast.Fast)
	return f
}

// FastMiddleware gives every request its own orchestrator over a fresh
// request-local tier and the shared tiers of stack.
func FastMiddleware(stack TierStack, base *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			f := fast.New(logger.FromContextOr(r.Context(), base), stack.Tiers()...)
			next.ServeHTTP(w, r.WithContext(ContextWithFast(r.Context(), f)))
		})
	}
}

package response

import (
	"net/http"

	pkgctx "github.com/sitewatch/sitewatch-backend/internal/pkg/context"
)

// RequestIDFromContext extracts the request id set by the RequestID
// middleware; empty when the middleware is not mounted.
func RequestIDFromContext(r *http.Request) string {
	return pkgctx.GetRequestID(r.Context())
}

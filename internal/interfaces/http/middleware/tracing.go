// Package middleware provides the HTTP middleware of the Atlas API.
package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Tracing starts a server span per request using otelgin. Span names follow
// "METHOD /route/:param". A disabled tracer is a no-op.
func Tracing(serviceName string, enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) { c.Next() }
	}
	return otelgin.Middleware(serviceName)
}

// SpanAttributes tags the current span with the request ID and, once
// Session has run, the caller's tenant, person and role. It must run inside
// the span, so after Tracing.
func SpanAttributes() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			if id := GetRequestID(c); id != "" {
				span.SetAttributes(attribute.String("request_id", id))
			}
			if id := GetIdentity(c); id != nil {
				span.SetAttributes(
					attribute.String("tenant_id", id.TenantID.String()),
					attribute.String("person_id", id.PersonID.String()),
					attribute.String("role", id.Role.String()),
				)
			}
		}
		c.Next()
	}
}

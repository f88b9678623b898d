// Package middleware provides the HTTP middleware chain of the slice server.
//
// Every middleware has the shape func(http.Handler) http.Handler and is
// applied outermost first:
//
//	handler := middleware.PanicRecovery(logger)(mux)
//	handler = middleware.Logging(logger)(handler)
//	handler = middleware.RequestID()(handler)
package middleware

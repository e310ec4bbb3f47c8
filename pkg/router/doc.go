// Package router provides the HTTP router used by the webdesk server,
// with pattern matching, middleware support, and URL parameter extraction.
//
// The router supports the following patterns:
//   - Exact match: /health
//   - Named parameters: /api/windows/:id
//   - Wildcard matching: /static/*
//
// Example usage:
//
//	r := router.New()
//	r.Use(router.RecoveryMiddleware(logger), router.RequestIDMiddleware())
//	r.GET("/ws", sessionHandler)
//	r.GET("/static/*", assets)
//	http.ListenAndServe(":8080", r)
package router

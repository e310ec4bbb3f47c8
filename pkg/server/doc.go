// Package server serves the webdesk page and its session websocket.
//
// NewHandler mounts the routes on a router with recovery, request id,
// logging and CORS middleware:
//
//	GET /              embedded desktop page
//	GET /static/*      page assets, compressed when the client accepts it
//	GET /ws            session websocket
//	GET /api/windows   decoded ?windows= parameter as JSON
//	GET /api/windows/:id  one decoded record, 404 when absent
//	POST /api/encode   JSON records to the windows query value
//	GET /health        liveness
//	GET /ready         readiness, 503 while shutting down
//	GET /metrics       session counters in Prometheus text format
//
// Server wraps http.Server with readiness tracking, optional TLS and
// graceful shutdown:
//
//	hub := session.NewHub(session.HubConfig{})
//	h, err := server.NewHandler(server.HandlerConfig{Hub: hub})
//	srv, err := server.New(server.Config{Addr: ":8080", Handler: h})
//	go srv.ListenAndServe()
//	defer srv.Shutdown(ctx)
package server

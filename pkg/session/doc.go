// Package session connects one browser tab to its own window manager.
//
// The page opens a websocket to /ws and sends JSON messages describing
// discrete actions (open, close, fullscreen, ...) and pointer gestures.
// The session applies them to a wm.Manager and answers with two kinds of
// message: "state", a full snapshot the page renders, and "replaceQuery",
// the query string the page must install with history.replaceState.
//
// A session starts with a "hello" carrying the viewport size and the
// page's query string:
//
//	{"type":"hello","viewport":{"width":1920,"height":1080},"query":"windows=..."}
//	{"type":"open","id":"intro.md"}
//	{"type":"gesture.start","id":"intro.md","kind":"drag","pointer":{"x":700,"y":400}}
//	{"type":"gesture.move","pointer":{"x":750,"y":420}}
//	{"type":"gesture.end","pointer":{"x":750,"y":420}}
//
// Each tab is independent; nothing is shared between sessions.
package session

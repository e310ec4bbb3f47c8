package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 64 * 1024
)

// Serve runs the session over conn until the page disconnects or ctx is
// cancelled. It owns conn and closes it on return.
func (s *Session) Serve(ctx context.Context, conn *websocket.Conn) error {
	defer conn.Close()
	defer s.Close()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.readPump(conn) })
	g.Go(func() error { return s.writePump(gctx, conn) })

	// Unblock the reader when the writer stops or ctx is cancelled.
	go func() {
		<-gctx.Done()
		conn.SetReadDeadline(time.Now())
	}()

	err := g.Wait()
	if ctx.Err() != nil || isClosed(err) {
		return nil
	}
	return err
}

func (s *Session) readPump(conn *websocket.Conn) error {
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.log.Debug("dropping undecodable message", "error", err)
			s.out.push(ServerMessage{Type: TypeError, Error: "invalid json"})
			continue
		}
		if err := s.Handle(msg); err != nil {
			s.log.Debug("message rejected", "type", msg.Type, "error", err)
			s.out.push(ServerMessage{Type: TypeError, Error: err.Error()})
		}
	}
}

func (s *Session) writePump(ctx context.Context, conn *websocket.Conn) error {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return ctx.Err()
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return err
			}
		case <-s.out.notify:
			for _, msg := range s.out.drain() {
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(msg); err != nil {
					return err
				}
			}
		}
	}
}

func isClosed(err error) bool {
	return err == nil ||
		errors.Is(err, context.Canceled) ||
		websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway)
}

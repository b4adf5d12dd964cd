package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/adapters/inbound/rpc"
	"github.com/gorilla/websocket"
)

const (
	wsWriteWait      = 10 * time.Second
	wsPongWait       = 60 * time.Second
	wsPingPeriod     = (wsPongWait * 9) / 10
	wsMaxMessageSize = maxRequestBytes
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// wsConn serializes writes to one websocket connection.
type wsConn struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *wsConn) writeJSON(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
		return err
	}
	return c.conn.WriteJSON(v)
}

func (c *wsConn) ping() error {
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait))
}

// handleWebSocket serves a persistent session. Messages are handled
// concurrently; when the peer disconnects the session is closed and every
// in-flight call is cancelled.
func (s ToolGatewayServer) handleWebSocket(dispatcher rpc.Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ac, authErr := s.resolveAuth(r)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.Logger.Printf("ToolGatewayServer: websocket upgrade failed: %v", err)
			return
		}
		c := &wsConn{conn: conn}
		session := rpc.NewSession(ac, authErr, s.TimeProvider.Now())

		ctx, cancel := context.WithCancel(r.Context())
		var inflight sync.WaitGroup
		defer func() {
			session.Close()
			cancel()
			inflight.Wait()
			conn.Close() //nolint:errcheck
		}()

		conn.SetReadLimit(wsMaxMessageSize)
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wsPongWait))
		})
		go s.keepAlive(ctx, c)

		for {
			msgType, data, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					s.Logger.Printf("ToolGatewayServer: websocket session %s closed: %v", session.ID(), err)
				}
				return
			}
			if msgType != websocket.TextMessage && msgType != websocket.BinaryMessage {
				continue
			}

			inflight.Go(func() {
				resp := dispatcher.Handle(ctx, session, data)
				if resp == nil || session.Closed() {
					return
				}
				if err := c.writeJSON(resp); err != nil {
					s.Logger.Printf("ToolGatewayServer: websocket write failed for session %s: %v", session.ID(), err)
				}
			})
		}
	}
}

func (s ToolGatewayServer) keepAlive(ctx context.Context, c *wsConn) {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.ping(); err != nil {
				return
			}
		}
	}
}

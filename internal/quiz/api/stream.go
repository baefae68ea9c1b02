package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/bloops-games/quiz/internal/bytespool"
	"github.com/bloops-games/quiz/internal/quiz/game"
	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
)

const wsWriteTimeout = 10 * time.Second

// subscription buffers views between the session, which must never block
// on a slow client, and the connection writer.
type subscription struct {
	initial game.View
	cancel  func()

	mtx    sync.Mutex
	items  []game.View
	notify chan struct{}
}

func subscribe(session *game.Session) (*subscription, error) {
	sub := &subscription{notify: make(chan struct{}, 1)}

	initial, cancel, err := session.Subscribe(sub.push)
	if err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	sub.initial = initial
	sub.cancel = cancel
	return sub, nil
}

func (s *subscription) push(v game.View) {
	s.mtx.Lock()
	s.items = append(s.items, v)
	s.mtx.Unlock()

	select {
	case s.notify <- struct{}{}:
	default:
	}
}

func (s *subscription) drain() []game.View {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	items := s.items
	s.items = nil
	return items
}

func keepAliveTicks(clock clockwork.Clock, d time.Duration) (<-chan time.Time, func()) {
	if d <= 0 {
		return nil, func() {}
	}
	t := clock.NewTicker(d)
	return t.Chan(), t.Stop
}

// marshalView encodes v into a pooled buffer without the encoder's trailing
// newline. The caller must release the buffer with bytespool.Put.
func marshalView(v game.View) (*bytes.Buffer, []byte, error) {
	buf := bytespool.Get()
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		bytespool.Put(buf)
		return nil, nil, fmt.Errorf("encode view: %w", err)
	}

	return buf, bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func writeSSE(w io.Writer, v game.View, retry time.Duration) error {
	buf, data, err := marshalView(v)
	if err != nil {
		return err
	}
	defer bytespool.Put(buf)

	return sse.Encode(w, sse.Event{Retry: uint(retry.Milliseconds()), Data: string(data)})
}

func (h *Handler) streamSSE(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	sub, err := subscribe(session)
	if err != nil {
		h.abort(c, "Game not found", err)
		return
	}
	defer sub.cancel()

	w := c.Writer
	w.Header().Set("Content-Type", sse.ContentType)
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if err := writeSSE(w, sub.initial, h.config.SSERetry); err != nil {
		h.logger.Errorf("write sse: %v", err)
		return
	}
	w.Flush()

	h.logger.Debugf("Subscribed sse listener for game %s", session.ID)
	defer h.logger.Debugf("Unsubscribed sse listener for game %s", session.ID)

	ticks, stop := keepAliveTicks(h.clock, h.config.KeepAlive)
	defer stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case <-ticks:
			if _, err := io.WriteString(w, ": keep-alive\n\n"); err != nil {
				return
			}
			w.Flush()
		case <-sub.notify:
			for _, v := range sub.drain() {
				if err := writeSSE(w, v, 0); err != nil {
					h.logger.Errorf("write sse: %v", err)
					return
				}
				w.Flush()

				if v.Phase() == game.PhaseDestroyed {
					return
				}
			}
		}
	}
}

func (h *Handler) streamWS(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	sub, err := subscribe(session)
	if err != nil {
		h.abort(c, "Game not found", err)
		return
	}
	defer sub.cancel()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Debugf("upgrade websocket: %v", err)
		return
	}
	defer conn.Close()

	// The read side only detects the peer going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	send := func(v game.View) error {
		buf, data, err := marshalView(v)
		if err != nil {
			return err
		}
		defer bytespool.Put(buf)

		if err := conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
			return err
		}
		return conn.WriteMessage(websocket.TextMessage, data)
	}

	if err := send(sub.initial); err != nil {
		return
	}

	ticks, stop := keepAliveTicks(h.clock, h.config.KeepAlive)
	defer stop()

	for {
		select {
		case <-closed:
			return
		case <-ticks:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteTimeout)); err != nil {
				return
			}
		case <-sub.notify:
			for _, v := range sub.drain() {
				if err := send(v); err != nil {
					h.logger.Debugf("write websocket: %v", err)
					return
				}

				if v.Phase() == game.PhaseDestroyed {
					msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, string(game.PhaseDestroyed))
					_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(wsWriteTimeout))
					return
				}
			}
		}
	}
}

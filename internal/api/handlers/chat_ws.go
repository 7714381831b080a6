package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/skillatlas/skillatlas/internal/services"
)

type ChatWSHandler struct {
	chat     services.ChatService
	upgrader websocket.Upgrader
	log      *logrus.Entry
}

func NewChatWSHandler(chat services.ChatService, log *logrus.Entry) *ChatWSHandler {
	return &ChatWSHandler{
		chat: chat,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origin in prod
		},
		log: log,
	}
}

type wsChatClientMsg struct {
	Content string `json:"content"`
}

type wsChatServerMsg struct {
	Type    string `json:"type"` // chunk | done | error
	Content string `json:"content,omitempty"`
	Message string `json:"message,omitempty"`
}

type wsConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (w *wsConn) writeJSON(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.c.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return w.c.WriteJSON(v)
}

// Stream upgrades to a websocket and answers each incoming message with
// a stream of assistant chunks followed by a done marker. One in-flight
// question per connection; the next read blocks until the stream ends.
func (h *ChatWSHandler) Stream(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote response in most cases
		return
	}
	defer conn.Close()

	wc := &wsConn{c: conn}
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Minute))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Minute))
		return nil
	})

	for {
		_, data, rerr := conn.ReadMessage()
		if rerr != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Minute))

		var msg wsChatClientMsg
		if err := json.Unmarshal(data, &msg); err != nil || msg.Content == "" {
			_ = wc.writeJSON(wsChatServerMsg{Type: "error", Message: "content is required"})
			continue
		}

		chunks, errs, err := h.chat.SendStream(ctx, id.UserID, msg.Content)
		if err != nil {
			h.log.WithError(err).Warn("chat stream failed to start")
			_ = wc.writeJSON(wsChatServerMsg{Type: "error", Message: "failed to get response from assistant"})
			continue
		}

		if !h.forward(ctx, wc, chunks, errs) {
			return
		}
	}
}

// forward drains one answer stream into the socket. The chunk channel
// closes when the answer is complete; any stream failure is buffered on
// the error channel by then. Returns false when the connection is no
// longer writable.
func (h *ChatWSHandler) forward(ctx context.Context, wc *wsConn, chunks <-chan string, errs <-chan error) bool {
	for chunk := range chunks {
		if ctx.Err() != nil {
			return false
		}
		if err := wc.writeJSON(wsChatServerMsg{Type: "chunk", Content: chunk}); err != nil {
			return false
		}
	}
	if err, ok := <-errs; ok && err != nil {
		h.log.WithError(err).Warn("chat stream failed mid-answer")
		return wc.writeJSON(wsChatServerMsg{Type: "error", Message: "failed to get response from assistant"}) == nil
	}
	return wc.writeJSON(wsChatServerMsg{Type: "done"}) == nil
}

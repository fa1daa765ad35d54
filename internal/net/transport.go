package net

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"LocalCanvas/internal/brush"
	"LocalCanvas/internal/export"
	"LocalCanvas/internal/state"
)

// Path is the websocket endpoint served by Handler.
const Path = "/ws"

// Message types a client may send.
const (
	MsgPointerDown  = "pointer-down"
	MsgPointerMove  = "pointer-move"
	MsgPointerUp    = "pointer-up"
	MsgPointerLeave = "pointer-leave"
	MsgSetColor     = "set-color"
	MsgSetSize      = "set-size"
	MsgSetMode      = "set-mode"
	MsgSetBrush     = "set-brush"
	MsgClear        = "clear"
	MsgUndo         = "undo"
	MsgRedo         = "redo"
	MsgExport       = "export"
)

// Reply types.
const (
	ReplyAck   = "ack"
	ReplyError = "error"
)

var (
	ErrUnknownMessage = errors.New("unknown message type")
	ErrBadValue       = errors.New("bad value")
)

// Message is one client request. Only the fields its type needs are read.
type Message struct {
	Type  string  `json:"type"`
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
	Value string  `json:"value,omitempty"`
	Size  float64 `json:"size,omitempty"`
}

// Reply answers every Message.
type Reply struct {
	Type    string `json:"type"`
	Session string `json:"session"`
	Cursor  int    `json:"cursor"`
	Length  int    `json:"length"`
	Error   string `json:"error,omitempty"`
}

// Peer is one connected browser and the session it draws on.
type Peer struct {
	Conn    *websocket.Conn
	Session *state.Session
}

// PeerManager accepts websocket clients and gives each its own session.
type PeerManager struct {
	peers    map[string]*Peer
	mu       sync.RWMutex
	opts     state.Options
	upgrader websocket.Upgrader
}

// NewPeerManager creates a manager whose sessions are built from opts.
func NewPeerManager(opts state.Options) *PeerManager {
	return &PeerManager{
		peers: make(map[string]*Peer),
		opts:  opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 64 * 1024,
			// pages are served from anywhere on the LAN
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Add registers a peer under its session ID.
func (pm *PeerManager) Add(peer *Peer) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.peers[peer.Session.ID()] = peer
	state.Logger().Info("client connected", "component", "net",
		"session", peer.Session.ID(), "remote", peer.Conn.RemoteAddr().String())
}

// Remove forgets the peer with session id.
func (pm *PeerManager) Remove(id string) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	delete(pm.peers, id)
	state.Logger().Info("client disconnected", "component", "net", "session", id)
}

// Count returns the number of connected peers.
func (pm *PeerManager) Count() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return len(pm.peers)
}

// Handler routes Path to the manager.
func (pm *PeerManager) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(Path, pm)
	return mux
}

// ServeHTTP upgrades the request and runs the peer's read loop until the
// connection closes.
func (pm *PeerManager) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := pm.upgrader.Upgrade(w, r, nil)
	if err != nil {
		state.Logger().Warn("upgrade failed", "component", "net", "err", err)
		return
	}
	defer conn.Close()

	session, err := state.NewSession(pm.opts)
	if err != nil {
		state.Logger().Error("session failed", "component", "net", "err", err)
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, err.Error()))
		return
	}
	peer := &Peer{Conn: conn, Session: session}
	pm.Add(peer)
	defer pm.Remove(session.ID())

	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				state.Logger().Warn("read failed", "component", "net", "session", session.ID(), "err", err)
			}
			return
		}
		if err := peer.handle(kind, data); err != nil {
			state.Logger().Warn("write failed", "component", "net", "session", session.ID(), "err", err)
			return
		}
	}
}

// handle runs one frame and writes the replies. Only write errors are
// returned; request errors become error replies.
func (p *Peer) handle(kind int, data []byte) error {
	var msg Message
	var err error
	switch {
	case kind != websocket.TextMessage:
		err = fmt.Errorf("%w: binary frame", ErrBadValue)
	default:
		err = json.Unmarshal(data, &msg)
	}
	var png []byte
	if err == nil {
		png, err = Dispatch(p.Session, msg)
	}
	if png != nil {
		if werr := p.Conn.WriteMessage(websocket.BinaryMessage, png); werr != nil {
			return werr
		}
	}
	return p.Conn.WriteJSON(replyFor(p.Session, err))
}

func replyFor(s *state.Session, err error) Reply {
	r := Reply{
		Type:    ReplyAck,
		Session: s.ID(),
		Cursor:  s.Canvas().HistoryCursor(),
		Length:  s.Canvas().HistoryLen(),
	}
	if err != nil {
		r.Type = ReplyError
		r.Error = err.Error()
	}
	return r
}

// Dispatch applies msg to s. For MsgExport it returns the encoded PNG.
func Dispatch(s *state.Session, msg Message) ([]byte, error) {
	c := s.Canvas()
	switch msg.Type {
	case MsgPointerDown:
		c.PointerDown(msg.X, msg.Y)
	case MsgPointerMove:
		c.PointerMove(msg.X, msg.Y)
	case MsgPointerUp:
		c.PointerUp()
	case MsgPointerLeave:
		c.PointerLeave()
	case MsgSetColor:
		s.SetColor(msg.Value)
	case MsgSetSize:
		if !(msg.Size > 0) || math.IsInf(msg.Size, 1) {
			return nil, fmt.Errorf("%w: size %v", ErrBadValue, msg.Size)
		}
		s.SetBrushSize(msg.Size)
	case MsgSetMode:
		m, ok := state.ParseMode(msg.Value)
		if !ok {
			return nil, fmt.Errorf("%w: mode %q", ErrBadValue, msg.Value)
		}
		s.SetMode(m)
	case MsgSetBrush:
		t, ok := brush.ParseType(msg.Value)
		if !ok {
			return nil, fmt.Errorf("%w: brush %q", ErrBadValue, msg.Value)
		}
		s.SetBrushType(t)
	case MsgClear:
		s.ClearCanvas()
	case MsgUndo:
		s.Undo()
	case MsgRedo:
		s.Redo()
	case MsgExport:
		// size, when set, scales the exported image
		var buf bytes.Buffer
		if err := export.WritePNG(&buf, export.Scale(c.Image(), msg.Size)); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}
	return nil, nil
}

// Serve listens on addr until ctx is done.
func Serve(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	state.Logger().Info("server listening", "component", "net", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdown)
	}
}

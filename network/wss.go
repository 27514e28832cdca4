package network

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/awesome-cap/hashmap"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/ratel-online/assistant/consts"
	"github.com/ratel-online/assistant/model"
	"github.com/ratel-online/core/log"
	"github.com/ratel-online/core/util/async"
)

// Frame is one websocket message. Replies echo the request id.
type Frame struct {
	T     string          `json:"t"`
	ReqID string          `json:"reqId,omitempty"`
	P     json.RawMessage `json:"p,omitempty"`
}

type gameAction struct {
	GameID string `json:"game_id"`
	model.ActionRequest
}

type gameRef struct {
	GameID string `json:"game_id"`
}

type pendingReply struct {
	id    string
	owner *SocketEngine
	ch    chan []byte
}

// pending holds replies awaited by every open engine socket, keyed by request id.
var pending = hashmap.New()

// SocketEngine multiplexes engine requests over one websocket connection.
type SocketEngine struct {
	conn *websocket.Conn

	lock sync.Mutex
	err  error
}

func DialSocketEngine(ctx context.Context, addr string) (*SocketEngine, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, addr, nil)
	if err != nil {
		return nil, &TransportError{Op: "dial", Err: err}
	}
	log.Infof("engine socket connected to %s\n", addr)
	return NewSocketEngine(conn), nil
}

func NewSocketEngine(conn *websocket.Conn) *SocketEngine {
	e := &SocketEngine{conn: conn}
	async.Async(e.listen)
	return e
}

func (e *SocketEngine) Start(ctx context.Context, req model.StartRequest) (*model.Envelope, error) {
	return e.request(ctx, "start", "", req)
}

func (e *SocketEngine) Act(ctx context.Context, gameID string, req model.ActionRequest) (*model.Envelope, error) {
	return e.request(ctx, "action", gameID, gameAction{GameID: gameID, ActionRequest: req})
}

func (e *SocketEngine) Undo(ctx context.Context, gameID string) (*model.Envelope, error) {
	return e.request(ctx, "undo", gameID, gameRef{GameID: gameID})
}

func (e *SocketEngine) State(ctx context.Context, gameID string) (*model.Envelope, error) {
	return e.request(ctx, "state", gameID, gameRef{GameID: gameID})
}

func (e *SocketEngine) Close() error {
	return e.conn.Close()
}

func (e *SocketEngine) request(ctx context.Context, op, gameID string, payload interface{}) (*model.Envelope, error) {
	p, err := codec.Marshal(payload)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	reply := &pendingReply{id: uuid.NewString(), owner: e, ch: make(chan []byte, 1)}
	data, err := codec.Marshal(Frame{T: op, ReqID: reply.id, P: p})
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	e.lock.Lock()
	if e.err != nil {
		err := e.err
		e.lock.Unlock()
		return nil, &TransportError{Op: op, Err: err}
	}
	pending.Set(reply.id, reply)
	err = e.conn.WriteMessage(websocket.TextMessage, data)
	e.lock.Unlock()
	if err != nil {
		pending.Del(reply.id)
		return nil, &TransportError{Op: op, Err: err}
	}

	select {
	case body, ok := <-reply.ch:
		if !ok {
			return nil, &TransportError{Op: op, Err: consts.ErrorsChanClosed}
		}
		return decode(op, gameID, 200, body)
	case <-ctx.Done():
		pending.Del(reply.id)
		return nil, &TransportError{Op: op, Err: ctx.Err()}
	}
}

func (e *SocketEngine) listen() {
	for {
		_, data, err := e.conn.ReadMessage()
		if err != nil {
			e.terminate(err)
			return
		}
		frame := Frame{}
		if err := codec.Unmarshal(data, &frame); err != nil {
			log.Errorf("engine socket: bad frame: %v\n", err)
			continue
		}
		v, ok := pending.Get(frame.ReqID)
		if !ok {
			log.Infof("engine socket: no pending request %s\n", frame.ReqID)
			continue
		}
		reply := v.(*pendingReply)
		if reply.owner != e {
			continue
		}
		pending.Del(reply.id)
		reply.ch <- frame.P
	}
}

func (e *SocketEngine) terminate(err error) {
	e.lock.Lock()
	defer e.lock.Unlock()
	e.err = err
	replies := make([]*pendingReply, 0)
	pending.Foreach(func(entry *hashmap.Entry) {
		if reply := entry.Value().(*pendingReply); reply.owner == e {
			replies = append(replies, reply)
		}
	})
	for _, reply := range replies {
		pending.Del(reply.id)
		close(reply.ch)
	}
	log.Infof("engine socket closed: %v\n", err)
}

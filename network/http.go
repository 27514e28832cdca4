package network

import (
	"bytes"
	"context"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ratel-online/assistant/model"
	"github.com/ratel-online/core/log"
	"github.com/ratel-online/core/util/json"
)

// HTTPEngine talks to the engine's JSON routes under a base url.
type HTTPEngine struct {
	baseURL string
	client  *http.Client
}

func NewHTTPEngine(baseURL string, client *http.Client) *HTTPEngine {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPEngine{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (e *HTTPEngine) Start(ctx context.Context, req model.StartRequest) (*model.Envelope, error) {
	return e.do(ctx, "start", http.MethodPost, "/api/game/start", "", req)
}

func (e *HTTPEngine) Act(ctx context.Context, gameID string, req model.ActionRequest) (*model.Envelope, error) {
	return e.do(ctx, "action", http.MethodPost, gamePath(gameID, "action"), gameID, req)
}

func (e *HTTPEngine) Undo(ctx context.Context, gameID string) (*model.Envelope, error) {
	return e.do(ctx, "undo", http.MethodPost, gamePath(gameID, "undo"), gameID, struct{}{})
}

func (e *HTTPEngine) State(ctx context.Context, gameID string) (*model.Envelope, error) {
	return e.do(ctx, "state", http.MethodGet, gamePath(gameID, "state"), gameID, nil)
}

func gamePath(gameID, route string) string {
	return "/api/game/" + url.PathEscape(gameID) + "/" + route
}

func (e *HTTPEngine) do(ctx context.Context, op, method, path, gameID string, payload interface{}) (*model.Envelope, error) {
	var body *bytes.Reader
	if payload != nil {
		body = bytes.NewReader(json.Marshal(payload))
	} else {
		body = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, e.baseURL+path, body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	start := time.Now()
	resp, err := e.client.Do(req)
	if err != nil {
		log.Errorf("%s %s failed: %v\n", method, path, err)
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	log.Infof("%s %s %d %v\n", method, path, resp.StatusCode, time.Since(start))
	return decode(op, gameID, resp.StatusCode, data)
}

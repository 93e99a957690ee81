package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/justkawal/polkadart/errs"
)

// rpcRequest is one outgoing JSON-RPC 2.0 request.
type rpcRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      int64       `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

// rpcResponse is one incoming JSON-RPC 2.0 response or notification.
type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      *int64          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  *notifParams    `json:"params,omitempty"`
}

type notifParams struct {
	Subscription string          `json:"subscription"`
	Result       json.RawMessage `json:"result"`
}

type rpcError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// WebsocketProvider is the default Provider: one writer path guarded
// by a mutex, one reader goroutine demultiplexing id-correlated
// responses from subscription notifications keyed by subscription id.
// Mirrors the arcsign WebSocketRPCClient's pendingCalls/subscriptions
// map pair.
type WebsocketProvider struct {
	url         string
	log         *logrus.Entry
	dialTimeout time.Duration
	connMu      sync.RWMutex
	conn        *websocket.Conn
	writeMu     sync.Mutex

	requestID atomic.Int64

	pendingMu    sync.Mutex
	pendingCalls map[int64]chan *rpcResponse

	subsMu        sync.Mutex
	subscriptions map[string]*wsSubscription

	closed    atomic.Bool
	closeChan chan struct{}
}

// Option configures a WebsocketProvider at construction time (C12).
type Option func(*WebsocketProvider)

// WithLogger overrides the provider's default logger.
func WithLogger(log *logrus.Logger) Option {
	return func(p *WebsocketProvider) {
		if log != nil {
			p.log = log.WithField("component", "websocket_provider")
		}
	}
}

// WithDialTimeout bounds how long Connect waits to complete the
// websocket handshake, independent of the caller's context deadline.
func WithDialTimeout(d time.Duration) Option {
	return func(p *WebsocketProvider) {
		p.dialTimeout = d
	}
}

// NewWebsocketProvider constructs a provider bound to url without
// connecting yet; call Connect to dial.
func NewWebsocketProvider(url string, opts ...Option) *WebsocketProvider {
	p := &WebsocketProvider{
		url:           url,
		log:           logrus.New().WithField("component", "websocket_provider"),
		pendingCalls:  make(map[int64]chan *rpcResponse),
		subscriptions: make(map[string]*wsSubscription),
		closeChan:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *WebsocketProvider) Connect(ctx context.Context) error {
	if p.dialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.dialTimeout)
		defer cancel()
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, p.url, nil)
	if err != nil {
		return errors.Wrapf(err, "dial websocket %q", p.url)
	}
	p.connMu.Lock()
	p.conn = conn
	p.connMu.Unlock()

	go p.readLoop()
	return nil
}

func (p *WebsocketProvider) Disconnect() error {
	if p.closed.Swap(true) {
		return nil
	}
	close(p.closeChan)

	p.connMu.Lock()
	defer p.connMu.Unlock()
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

func (p *WebsocketProvider) IsConnected() bool {
	p.connMu.RLock()
	defer p.connMu.RUnlock()
	return p.conn != nil && !p.closed.Load()
}

// Send issues one JSON-RPC request and blocks until its response
// arrives, the context is cancelled, or the provider closes.
func (p *WebsocketProvider) Send(ctx context.Context, method string, params interface{}) (interface{}, error) {
	if p.closed.Load() {
		return nil, fmt.Errorf("provider closed")
	}

	id := p.requestID.Add(1)
	respChan := make(chan *rpcResponse, 1)
	p.pendingMu.Lock()
	p.pendingCalls[id] = respChan
	p.pendingMu.Unlock()
	defer func() {
		p.pendingMu.Lock()
		delete(p.pendingCalls, id)
		p.pendingMu.Unlock()
	}()

	req := rpcRequest{JSONRPC: "2.0", ID: id, Method: method, Params: params}

	p.connMu.RLock()
	conn := p.conn
	p.connMu.RUnlock()
	if conn == nil {
		return nil, fmt.Errorf("provider not connected")
	}
	p.writeMu.Lock()
	err := conn.WriteJSON(req)
	p.writeMu.Unlock()
	if err != nil {
		return nil, errors.Wrapf(err, "write rpc request %q", method)
	}

	select {
	case resp := <-respChan:
		if resp.Error != nil {
			return nil, errors.WithStack(&errs.RpcError{Code: resp.Error.Code, Message: resp.Error.Message, Data: resp.Error.Data})
		}
		var result interface{}
		if len(resp.Result) > 0 {
			if err := json.Unmarshal(resp.Result, &result); err != nil {
				return nil, errors.Wrapf(err, "unmarshal result for %q", method)
			}
		}
		return result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.closeChan:
		return nil, fmt.Errorf("provider closed while waiting for %q", method)
	}
}

// Subscribe opens a subscription: the initial Send call returns the
// subscription id, after which notifications tagged with that id are
// demultiplexed onto the returned Subscription's stream.
func (p *WebsocketProvider) Subscribe(ctx context.Context, method string, params interface{}, onCancel func(string)) (Subscription, error) {
	result, err := p.Send(ctx, method, params)
	if err != nil {
		return nil, errors.Wrapf(err, "subscribe %q", method)
	}
	subID, ok := result.(string)
	if !ok {
		return nil, fmt.Errorf("subscribe %q: expected string subscription id, got %T", method, result)
	}

	sub := &wsSubscription{
		id:       subID,
		ch:       make(chan SubscriptionMessage, 256),
		onCancel: onCancel,
		provider: p,
	}

	p.subsMu.Lock()
	p.subscriptions[subID] = sub
	p.subsMu.Unlock()

	return sub, nil
}

func (p *WebsocketProvider) readLoop() {
	for {
		p.connMu.RLock()
		conn := p.conn
		p.connMu.RUnlock()
		if conn == nil {
			return
		}

		select {
		case <-p.closeChan:
			return
		default:
		}

		var msg rpcResponse
		if err := conn.ReadJSON(&msg); err != nil {
			p.log.WithError(err).Warn("websocket read failed")
			return
		}

		if msg.ID != nil {
			p.pendingMu.Lock()
			respChan, ok := p.pendingCalls[*msg.ID]
			p.pendingMu.Unlock()
			if ok {
				respChan <- &msg
			}
			continue
		}

		if msg.Params != nil {
			p.subsMu.Lock()
			sub, ok := p.subscriptions[msg.Params.Subscription]
			p.subsMu.Unlock()
			if ok {
				select {
				case sub.ch <- SubscriptionMessage{Method: msg.Method, Subscription: msg.Params.Subscription, Result: msg.Params.Result}:
				default:
					p.log.Warn("subscription channel full, dropping notification")
				}
			}
		}
	}
}

func (p *WebsocketProvider) forgetSubscription(id string) {
	p.subsMu.Lock()
	defer p.subsMu.Unlock()
	if sub, ok := p.subscriptions[id]; ok {
		close(sub.ch)
		delete(p.subscriptions, id)
	}
}

type wsSubscription struct {
	id       string
	ch       chan SubscriptionMessage
	onCancel func(string)
	provider *WebsocketProvider
	canceled atomic.Bool
}

func (s *wsSubscription) ID() string { return s.id }

func (s *wsSubscription) Stream() <-chan SubscriptionMessage { return s.ch }

func (s *wsSubscription) Cancel() {
	if s.canceled.Swap(true) {
		return
	}
	if s.onCancel != nil {
		s.onCancel(s.id)
	}
	s.provider.forgetSubscription(s.id)
}

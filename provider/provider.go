// Package provider declares the transport capability this module
// consumes (spec.md §6) and ships one concrete implementation over
// WebSocket JSON-RPC 2.0 (C10, grounded on the arcsign chainadapter/rpc
// websocket client).
package provider

import (
	"context"
	"encoding/json"
)

// SubscriptionMessage is one notification delivered on a Subscription's
// stream: the JSON-RPC 2.0 notification's method and subscription id,
// and its raw result payload.
type SubscriptionMessage struct {
	Method       string
	Subscription string
	Result       json.RawMessage
}

// Subscription is a live JSON-RPC subscription.
type Subscription interface {
	// ID returns the subscription id minted by the server.
	ID() string
	// Stream returns the channel of incoming notifications.
	// WebsocketProvider closes it when the subscription is cancelled;
	// Disconnect does not close the streams of open subscriptions.
	Stream() <-chan SubscriptionMessage
	// Cancel stops the subscription locally and invokes the onCancel
	// hook passed to Subscribe.
	Cancel()
}

// Provider is the transport capability consumed by this module:
// request/response plus subscriptions, connection lifecycle owned by
// the implementation.
type Provider interface {
	// Send issues one JSON-RPC request and returns its decoded result.
	Send(ctx context.Context, method string, params interface{}) (interface{}, error)

	// Subscribe opens a JSON-RPC subscription. onCancel is invoked
	// when the returned Subscription's stream is cancelled by the
	// consumer — the integration seam for issuing chainHead_v1_unfollow
	// or transaction_v1_stop (spec.md §9).
	Subscribe(ctx context.Context, method string, params interface{}, onCancel func(subscriptionID string)) (Subscription, error)

	Connect(ctx context.Context) error
	Disconnect() error
	IsConnected() bool
}

// Package broadcast implements TransactionBroadcast (C8, spec.md
// §4.7): a thin stateful wrapper over transaction_v1_broadcast /
// transaction_v1_stop.
package broadcast

import (
	"context"
	"encoding/hex"

	"github.com/justkawal/polkadart/provider"
)

// Broadcast is the live handle returned by Send: an operation id (the
// subscription id) and the raw stream of results.
type Broadcast struct {
	OperationID string
	sub         provider.Subscription
}

// Stream returns the raw subscription stream of broadcast results.
func (b *Broadcast) Stream() <-chan provider.SubscriptionMessage {
	return b.sub.Stream()
}

// Stop cancels the broadcast operation. Cancelling the stream directly
// has the same effect: the provider's onCancel hook issues
// transaction_v1_stop(operationId) exactly once (spec.md §8 property
// 9).
func (b *Broadcast) Stop() {
	b.sub.Cancel()
}

// Send hex-encodes extrinsicBytes (with a 0x prefix) and opens a
// transaction_v1_broadcast subscription.
func Send(ctx context.Context, p provider.Provider, extrinsicBytes []byte) (*Broadcast, error) {
	hexBody := "0x" + hex.EncodeToString(extrinsicBytes)

	onCancel := func(opID string) {
		_, _ = p.Send(context.Background(), "transaction_v1_stop", []interface{}{opID})
	}

	sub, err := p.Subscribe(ctx, "transaction_v1_broadcast", []interface{}{hexBody}, onCancel)
	if err != nil {
		return nil, err
	}

	return &Broadcast{OperationID: sub.ID(), sub: sub}, nil
}

// Stop issues transaction_v1_stop(operationId) directly, without
// going through the stream-cancellation path. Exposed alongside
// Broadcast.Stop for callers that only retained the operation id.
func Stop(ctx context.Context, p provider.Provider, operationID string) error {
	_, err := p.Send(ctx, "transaction_v1_stop", []interface{}{operationID})
	return err
}

package broadcast

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justkawal/polkadart/provider"
)

type fakeSubscription struct {
	id       string
	ch       chan provider.SubscriptionMessage
	onCancel func(string)

	mu        sync.Mutex
	cancelled bool
}

func (s *fakeSubscription) ID() string                                  { return s.id }
func (s *fakeSubscription) Stream() <-chan provider.SubscriptionMessage { return s.ch }
func (s *fakeSubscription) Cancel() {
	s.mu.Lock()
	already := s.cancelled
	s.cancelled = true
	s.mu.Unlock()
	if already {
		return
	}
	if s.onCancel != nil {
		s.onCancel(s.id)
	}
}

type fakeProvider struct {
	mu        sync.Mutex
	stopCalls int
}

func (p *fakeProvider) Connect(context.Context) error { return nil }
func (p *fakeProvider) Disconnect() error             { return nil }
func (p *fakeProvider) IsConnected() bool             { return true }

func (p *fakeProvider) Subscribe(_ context.Context, _ string, _ interface{}, onCancel func(string)) (provider.Subscription, error) {
	return &fakeSubscription{id: "bcast-1", ch: make(chan provider.SubscriptionMessage, 4), onCancel: onCancel}, nil
}

func (p *fakeProvider) Send(_ context.Context, method string, _ interface{}) (interface{}, error) {
	if method == "transaction_v1_stop" {
		p.mu.Lock()
		p.stopCalls++
		p.mu.Unlock()
	}
	return nil, nil
}

func TestSendReturnsOperationID(t *testing.T) {
	p := &fakeProvider{}
	b, err := Send(context.Background(), p, []byte{0x01, 0x02})
	require.NoError(t, err)
	assert.Equal(t, "bcast-1", b.OperationID)
}

func TestStopIssuesTransactionStopExactlyOnce(t *testing.T) {
	p := &fakeProvider{}
	b, err := Send(context.Background(), p, []byte{0x01})
	require.NoError(t, err)

	b.Stop()
	b.Stop()

	p.mu.Lock()
	defer p.mu.Unlock()
	assert.Equal(t, 1, p.stopCalls)
}

func TestPackageLevelStop(t *testing.T) {
	p := &fakeProvider{}
	err := Stop(context.Background(), p, "bcast-1")
	require.NoError(t, err)
	assert.Equal(t, 1, p.stopCalls)
}

package chainhead

import (
	"context"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/justkawal/polkadart/errs"
	"github.com/justkawal/polkadart/provider"
)

// OperationKind distinguishes the three asynchronous operation shapes
// a chainHead session can start (spec.md §3).
type OperationKind string

const (
	OperationBody    OperationKind = "body"
	OperationCall    OperationKind = "call"
	OperationStorage OperationKind = "storage"
)

// StorageItemType is the wire shape of one storage query item's type
// field (spec.md §6).
type StorageItemType string

const (
	StorageValue                        StorageItemType = "value"
	StorageHash                         StorageItemType = "hash"
	StorageClosestDescendantMerkleValue StorageItemType = "closestDescendantMerkleValue"
	StorageDescendantsValues            StorageItemType = "descendantsValues"
	StorageDescendantsHashes            StorageItemType = "descendantsHashes"
)

// StorageItem is one entry of a chainHead_v1_storage request.
type StorageItem struct {
	Key  string          `json:"key"`
	Type StorageItemType `json:"type"`
}

// OperationStarted is the synchronous result of body/call/storage: the
// call either starts (carrying an operation id correlated to later
// stream events) or the session's concurrent-operation limit is
// reached.
type OperationStarted struct {
	Started      bool
	LimitReached bool
	OperationID  string
}

// Session is ChainHeadSession (C7): a state machine over the
// chainHead_v1_follow subscription. Internal state is confined to the
// session's owner per spec.md §5; the mutex here exists because the
// default Provider delivers notifications on its own reader goroutine
// concurrently with calls made from the consumer's goroutine.
type Session struct {
	subscriptionID string
	provider       provider.Provider
	sub            provider.Subscription
	log            *logrus.Entry

	mu     sync.Mutex
	active bool
	pinned mapset.Set[string]

	events chan Event
	errors chan error
}

// Option configures a Session at construction time (C12).
type Option func(*sessionConfig)

type sessionConfig struct {
	log         *logrus.Logger
	withRuntime bool
}

// WithRuntime requests runtime version events on the follow
// subscription, equivalent to the followSubscription's withRuntime
// argument. Default false.
func WithRuntime(withRuntime bool) Option {
	return func(c *sessionConfig) { c.withRuntime = withRuntime }
}

// WithLogger overrides the session's default logger.
func WithLogger(log *logrus.Logger) Option {
	return func(c *sessionConfig) {
		if log != nil {
			c.log = log
		}
	}
}

// Follow opens a chainHead_v1_follow subscription and starts
// dispatching typed events onto Session.Events(). Unfollow cancels the
// underlying subscription, which invokes chainHead_v1_unfollow through
// the provider's onCancel hook.
func Follow(ctx context.Context, p provider.Provider, opts ...Option) (*Session, error) {
	cfg := &sessionConfig{log: logrus.New()}
	for _, opt := range opts {
		opt(cfg)
	}

	s := &Session{
		provider: p,
		log:      cfg.log.WithField("component", "chainhead_session"),
		pinned:   mapset.NewSet[string](),
		events:   make(chan Event, 256),
		errors:   make(chan error, 16),
	}

	sub, err := p.Subscribe(ctx, "chainHead_v1_follow", []interface{}{cfg.withRuntime}, s.handleCancel)
	if err != nil {
		return nil, err
	}
	s.sub = sub
	s.subscriptionID = sub.ID()

	s.mu.Lock()
	s.active = true
	s.mu.Unlock()

	go s.dispatchLoop()
	return s, nil
}

// SubscriptionID returns the server-minted follow subscription id.
func (s *Session) SubscriptionID() string {
	return s.subscriptionID
}

// Events returns the typed event stream. Consumers read from this
// channel; it closes when the underlying subscription ends.
func (s *Session) Events() <-chan Event {
	return s.events
}

// Errors returns the stream of per-notification errors the dispatch
// loop could not turn into an Event — principally
// errs.UnknownChainHeadEventError for an unrecognized `event` tag.
// Every taxonomy kind other than SessionInactive-on-unfollow-after-stop
// surfaces to the caller (spec.md §7); this is that surface for
// notification-parsing failures, since they have no Event to ride on.
// It closes alongside Events() when the underlying subscription ends.
func (s *Session) Errors() <-chan error {
	return s.errors
}

func (s *Session) dispatchLoop() {
	defer close(s.events)
	defer close(s.errors)
	for msg := range s.sub.Stream() {
		event, err := parseEvent(msg.Result)
		if err != nil {
			s.log.WithError(err).Warn("unrecognized chainHead event, surfacing on Errors")
			select {
			case s.errors <- err:
			default:
				s.log.Warn("error channel full, dropping parse error")
			}
			continue
		}
		s.trackPinning(event)
		s.events <- event

		if _, isStop := event.(Stop); isStop {
			s.handleCancel(s.subscriptionID)
			return
		}
	}
}

// trackPinning maintains the client's view of the server-owned pinned
// block set (spec.md §3): newBlock/initialized add a hash, finalized's
// prunedBlockHashes and explicit Unpin calls remove one.
func (s *Session) trackPinning(event Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch e := event.(type) {
	case Initialized:
		if e.FinalizedBlockHash != "" {
			s.pinned.Add(e.FinalizedBlockHash)
		}
	case NewBlock:
		s.pinned.Add(e.BlockHash)
	case Finalized:
		for _, h := range e.PrunedBlockHashes {
			s.pinned.Remove(h)
		}
	}
}

func (s *Session) isActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Header returns the hex-encoded header for blockHash, or "" if the
// block is not pinned. This is synchronous in the RPC sense: the
// result comes back in the response, not on the event stream.
func (s *Session) Header(ctx context.Context, blockHash string) (string, error) {
	if !s.isActive() {
		return "", &errs.SessionInactiveError{Op: "header"}
	}
	result, err := s.provider.Send(ctx, "chainHead_v1_header", []interface{}{s.subscriptionID, blockHash})
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", nil
	}
	hex, _ := result.(string)
	return hex, nil
}

// Body starts a chainHead_v1_body operation.
func (s *Session) Body(ctx context.Context, blockHash string) (OperationStarted, error) {
	if !s.isActive() {
		return OperationStarted{}, &errs.SessionInactiveError{Op: "body"}
	}
	return s.startOperation(ctx, "chainHead_v1_body", []interface{}{s.subscriptionID, blockHash})
}

// Call starts a chainHead_v1_call operation.
func (s *Session) Call(ctx context.Context, blockHash, function, paramsHex string) (OperationStarted, error) {
	if !s.isActive() {
		return OperationStarted{}, &errs.SessionInactiveError{Op: "call"}
	}
	return s.startOperation(ctx, "chainHead_v1_call", []interface{}{s.subscriptionID, blockHash, function, paramsHex})
}

// Storage starts a chainHead_v1_storage operation.
func (s *Session) Storage(ctx context.Context, blockHash string, items []StorageItem, childTrie string) (OperationStarted, error) {
	if !s.isActive() {
		return OperationStarted{}, &errs.SessionInactiveError{Op: "storage"}
	}
	params := []interface{}{s.subscriptionID, blockHash, items}
	if childTrie != "" {
		params = append(params, childTrie)
	} else {
		params = append(params, nil)
	}
	return s.startOperation(ctx, "chainHead_v1_storage", params)
}

func (s *Session) startOperation(ctx context.Context, method string, params []interface{}) (OperationStarted, error) {
	result, err := s.provider.Send(ctx, method, params)
	if err != nil {
		return OperationStarted{}, err
	}
	m, ok := result.(map[string]interface{})
	if !ok {
		return OperationStarted{}, nil
	}
	resultTag, _ := m["result"].(string)
	opID, _ := m["operationId"].(string)
	switch resultTag {
	case "limitReached":
		return OperationStarted{LimitReached: true}, nil
	default:
		if opID == "" {
			// Some server implementations omit operationId on certain
			// started responses; mint a local one so callers always
			// have something to correlate later operationX events with.
			opID = uuid.NewString()
		}
		return OperationStarted{Started: true, OperationID: opID}, nil
	}
}

// Unpin releases the given block hashes from the client's bookkeeping
// and tells the server they are no longer needed.
func (s *Session) Unpin(ctx context.Context, blockHashes []string) error {
	if !s.isActive() {
		return &errs.SessionInactiveError{Op: "unpin"}
	}
	_, err := s.provider.Send(ctx, "chainHead_v1_unpin", []interface{}{s.subscriptionID, blockHashes})
	if err != nil {
		return err
	}
	s.mu.Lock()
	for _, h := range blockHashes {
		s.pinned.Remove(h)
	}
	s.mu.Unlock()
	return nil
}

// Unfollow closes the session. It is idempotent: a second call is a
// no-op (spec.md §4.6/§8 property 8).
func (s *Session) Unfollow() {
	s.sub.Cancel()
}

// handleCancel is passed to provider.Subscribe as the onCancel hook and
// is also called by dispatchLoop on a server `stop` event. It may run
// more than once (for example, a stop event followed by Unfollow); only
// the first call while the session is active marks it inactive and
// issues chainHead_v1_unfollow.
func (s *Session) handleCancel(subscriptionID string) {
	s.mu.Lock()
	wasActive := s.active
	s.active = false
	s.mu.Unlock()

	if !wasActive {
		return
	}

	// Best effort: if the session already saw a server `stop` event,
	// SessionInactive from a racing unfollow call is expected and
	// swallowed (spec.md §7).
	_, err := s.provider.Send(context.Background(), "chainHead_v1_unfollow", []interface{}{subscriptionID})
	if err != nil {
		s.log.WithError(err).Debug("unfollow after cancel")
	}
}

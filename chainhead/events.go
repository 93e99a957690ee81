// Package chainhead implements ChainHeadSession (C7, spec.md §4.6): a
// long-lived protocol state machine over the chainHead_v1_follow
// subscription, with typed events, pinned-block operations, operation
// id correlation, and unfollow lifecycle.
package chainhead

import (
	"encoding/json"

	"github.com/justkawal/polkadart/errs"
)

// EventKind tags the typed chainHead event variants (spec.md §4.6).
type EventKind string

const (
	KindInitialized            EventKind = "initialized"
	KindNewBlock               EventKind = "newBlock"
	KindBestBlockChanged       EventKind = "bestBlockChanged"
	KindFinalized              EventKind = "finalized"
	KindStop                   EventKind = "stop"
	KindOperationBodyDone      EventKind = "operationBodyDone"
	KindOperationCallDone      EventKind = "operationCallDone"
	KindOperationStorageItems  EventKind = "operationStorageItems"
	KindOperationStorageDone   EventKind = "operationStorageDone"
	KindOperationError         EventKind = "operationError"
	KindOperationInaccessible  EventKind = "operationInaccessible"
)

// Event is implemented by every typed chainHead event variant. This
// models the source's base-class-with-subclasses as a tagged sum type
// keyed by the wire `event` string (spec.md §9).
type Event interface {
	Kind() EventKind
}

type Initialized struct {
	FinalizedBlockHash    string
	FinalizedBlockRuntime json.RawMessage
}

func (Initialized) Kind() EventKind { return KindInitialized }

type NewBlock struct {
	BlockHash       string
	ParentBlockHash string
	NewRuntime      json.RawMessage
}

func (NewBlock) Kind() EventKind { return KindNewBlock }

type BestBlockChanged struct {
	BestBlockHash string
}

func (BestBlockChanged) Kind() EventKind { return KindBestBlockChanged }

type Finalized struct {
	FinalizedBlockHashes []string
	PrunedBlockHashes    []string
}

func (Finalized) Kind() EventKind { return KindFinalized }

type Stop struct{}

func (Stop) Kind() EventKind { return KindStop }

type OperationBodyDone struct {
	OperationID string
	Value       []string
}

func (OperationBodyDone) Kind() EventKind { return KindOperationBodyDone }

type OperationCallDone struct {
	OperationID string
	Output      string
}

func (OperationCallDone) Kind() EventKind { return KindOperationCallDone }

type OperationStorageItems struct {
	OperationID string
	Items       []json.RawMessage
}

func (OperationStorageItems) Kind() EventKind { return KindOperationStorageItems }

type OperationStorageDone struct {
	OperationID string
}

func (OperationStorageDone) Kind() EventKind { return KindOperationStorageDone }

type OperationError struct {
	OperationID string
	Error       string
}

func (OperationError) Kind() EventKind { return KindOperationError }

type OperationInaccessible struct {
	OperationID string
}

func (OperationInaccessible) Kind() EventKind { return KindOperationInaccessible }

// wireEvent is the raw shape of a chainHead_v1_follow subscription
// notification, covering every variant's fields.
type wireEvent struct {
	Event string `json:"event"`

	// initialized
	FinalizedBlockHash    string          `json:"finalizedBlockHash"`
	FinalizedBlockHashesWire []string        `json:"finalizedBlockHashes"`
	FinalizedBlockRuntime json.RawMessage `json:"finalizedBlockRuntime"`

	// newBlock
	BlockHash  string          `json:"blockHash"`
	ParentHash string          `json:"parentBlockHash"`
	NewRuntime json.RawMessage `json:"newRuntime"`

	// bestBlockChanged
	BestBlockHash string `json:"bestBlockHash"`

	// finalized
	PrunedBlockHashes []string `json:"prunedBlockHashes"`

	// operation events
	OperationID string            `json:"operationId"`
	Value       []string          `json:"value"`
	Output      string            `json:"output"`
	Items       []json.RawMessage `json:"items"`
	ErrorMsg    string            `json:"error"`
}

// parseEvent discriminates raw on its `event` tag and builds the typed
// Event variant. Unknown tags raise UnknownChainHeadEventError; the
// client never synthesizes events, only discriminates and forwards
// (spec.md §4.6).
func parseEvent(raw json.RawMessage) (Event, error) {
	var w wireEvent
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}

	switch EventKind(w.Event) {
	case KindInitialized:
		hash := w.FinalizedBlockHash
		if hash == "" && len(w.FinalizedBlockHashesWire) > 0 {
			hash = w.FinalizedBlockHashesWire[0]
		}
		return Initialized{FinalizedBlockHash: hash, FinalizedBlockRuntime: w.FinalizedBlockRuntime}, nil
	case KindNewBlock:
		return NewBlock{BlockHash: w.BlockHash, ParentBlockHash: w.ParentHash, NewRuntime: w.NewRuntime}, nil
	case KindBestBlockChanged:
		return BestBlockChanged{BestBlockHash: w.BestBlockHash}, nil
	case KindFinalized:
		return Finalized{FinalizedBlockHashes: w.FinalizedBlockHashesWire, PrunedBlockHashes: w.PrunedBlockHashes}, nil
	case KindStop:
		return Stop{}, nil
	case KindOperationBodyDone:
		return OperationBodyDone{OperationID: w.OperationID, Value: w.Value}, nil
	case KindOperationCallDone:
		return OperationCallDone{OperationID: w.OperationID, Output: w.Output}, nil
	case KindOperationStorageItems:
		return OperationStorageItems{OperationID: w.OperationID, Items: w.Items}, nil
	case KindOperationStorageDone:
		return OperationStorageDone{OperationID: w.OperationID}, nil
	case KindOperationError:
		return OperationError{OperationID: w.OperationID, Error: w.ErrorMsg}, nil
	case KindOperationInaccessible:
		return OperationInaccessible{OperationID: w.OperationID}, nil
	default:
		return nil, &errs.UnknownChainHeadEventError{Tag: w.Event}
	}
}

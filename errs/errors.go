// Package errs defines the error taxonomy shared by every stage of the
// extrinsic construction pipeline and the chainHead session.
//
// Encoder and schema errors are deliberately plain: they carry the
// failing extension identifier or type id so a caller debugging a
// signing-payload mismatch can see exactly which field diverged.
// Provider-boundary errors are wrapped with github.com/pkg/errors so a
// stack trace survives the RPC round trip.
package errs

import "fmt"

// MissingExtensionValueError is raised when the schema requires a value
// for an extension identifier that was not supplied in the map the
// raising stage reads (the extensions map for in-block bytes, the
// additionalSigned map for the signing payload's additional part).
type MissingExtensionValueError struct {
	Identifier string
}

func (e *MissingExtensionValueError) Error() string {
	return fmt.Sprintf("missing value for extension %q", e.Identifier)
}

// EraFormatError is raised when a CheckMortality/CheckEra extension
// value is not the pre-encoded byte sequence the encoder expects.
type EraFormatError struct {
	Identifier string
	Cause      error
}

func (e *EraFormatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("era format error for %q: %v", e.Identifier, e.Cause)
	}
	return fmt.Sprintf("era format error for %q", e.Identifier)
}

func (e *EraFormatError) Unwrap() error { return e.Cause }

// UnsupportedVersionError is raised when an extrinsic version byte is
// not in {4,5} on decode, or when encodeGeneral is invoked against a
// detected version other than 5.
type UnsupportedVersionError struct {
	Version int
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported extrinsic version: %d", e.Version)
}

// RpcError wraps a non-null JSON-RPC error payload.
type RpcError struct {
	Code    int
	Message string
	Data    []byte
}

func (e *RpcError) Error() string {
	if len(e.Data) > 0 {
		return fmt.Sprintf("rpc error %d: %s (data=%s)", e.Code, e.Message, e.Data)
	}
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// UnknownChainHeadEventError is raised when the `event` discriminator
// on a chainHead_v1_follow subscription message does not match any
// known tag.
type UnknownChainHeadEventError struct {
	Tag string
}

func (e *UnknownChainHeadEventError) Error() string {
	return fmt.Sprintf("unknown chainHead event: %q", e.Tag)
}

// SessionInactiveError is raised when a session operation is issued
// after unfollow() or after observing a server `stop` event.
type SessionInactiveError struct {
	Op string
}

func (e *SessionInactiveError) Error() string {
	return fmt.Sprintf("chainHead session inactive: operation %q rejected", e.Op)
}

// CodecError wraps a codec failure for a specific extension/type id.
type CodecError struct {
	TypeID uint32
	Cause  error
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("codec error for type id %d: %v", e.TypeID, e.Cause)
}

func (e *CodecError) Unwrap() error { return e.Cause }

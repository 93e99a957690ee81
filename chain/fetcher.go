// Package chain implements ChainData & Fetcher (C6, spec.md §4 control
// flow): a parallel fetch of the handful of chain facts the extension
// builder needs before it can populate CheckSpecVersion, CheckGenesis,
// CheckNonce and friends.
package chain

import (
	"context"
	"encoding/hex"
	"strings"
	"sync"

	"github.com/justkawal/polkadart/provider"
)

// ChainProperties carries chainSpec_v1_properties fields callers use to
// render amounts (spec.md §6 addition); not consumed by the extension
// builder itself.
type ChainProperties struct {
	SS58Format    uint32
	TokenDecimals uint32
	TokenSymbol   string
}

// Data is the resolved snapshot of chain facts needed to populate the
// standard extension set (spec.md §4.3), plus chain metadata for
// logging/diagnostics and amount rendering.
type Data struct {
	GenesisHash        []byte
	BlockHash          []byte
	BlockNumber        uint64
	SpecVersion        uint32
	TransactionVersion uint32
	Nonce              uint64
	ChainName          string
	Properties         ChainProperties
}

// Fetcher pulls Data through a Provider, in parallel, teacher-style:
// one goroutine per call guarded by a WaitGroup. Fetch waits for every
// call to finish and then returns the first error recorded, if any
// (mirrors the bifrost Client's sequential RPC calls, generalized to
// run concurrently since none of the seven calls depends on another).
type Fetcher struct {
	p       provider.Provider
	address []byte // account raw public key, passed to system_accountNextIndex
}

// NewFetcher binds a Fetcher to a provider and the account whose nonce
// should be fetched.
func NewFetcher(p provider.Provider, address []byte) *Fetcher {
	return &Fetcher{p: p, address: address}
}

// Fetch resolves every field concurrently and returns the first error
// encountered, if any.
func (f *Fetcher) Fetch(ctx context.Context) (*Data, error) {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		data Data
		errs []error
	)

	record := func(err error) {
		if err == nil {
			return
		}
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	wg.Add(7)

	go func() {
		defer wg.Done()
		hash, err := f.p.Send(ctx, "chainSpec_v1_genesisHash", nil)
		if err != nil {
			record(err)
			return
		}
		mu.Lock()
		data.GenesisHash = decodeHexResult(hash)
		mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		hash, err := f.p.Send(ctx, "chain_getBlockHash", nil)
		if err != nil {
			record(err)
			return
		}
		mu.Lock()
		data.BlockHash = decodeHexResult(hash)
		mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		num, err := f.p.Send(ctx, "chain_getHeader", nil)
		if err != nil {
			record(err)
			return
		}
		mu.Lock()
		data.BlockNumber = decodeUintResult(num)
		mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		rv, err := f.p.Send(ctx, "state_getRuntimeVersion", nil)
		if err != nil {
			record(err)
			return
		}
		mu.Lock()
		data.SpecVersion, data.TransactionVersion = decodeRuntimeVersion(rv)
		mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		n, err := f.p.Send(ctx, "system_accountNextIndex", f.address)
		if err != nil {
			record(err)
			return
		}
		mu.Lock()
		data.Nonce = decodeUintResult(n)
		mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		name, err := f.p.Send(ctx, "chainSpec_v1_chainName", nil)
		if err != nil {
			record(err)
			return
		}
		mu.Lock()
		data.ChainName, _ = name.(string)
		mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		props, err := f.p.Send(ctx, "chainSpec_v1_properties", nil)
		if err != nil {
			record(err)
			return
		}
		mu.Lock()
		data.Properties = decodeProperties(props)
		mu.Unlock()
	}()

	wg.Wait()

	if len(errs) > 0 {
		return nil, errs[0]
	}
	return &data, nil
}

// decodeHexResult, decodeUintResult and decodeRuntimeVersion are left
// to the Provider's result shape (Provider.Send returns already
// json.Unmarshaled content); a real provider implementation decodes
// hex-prefixed strings / numeric JSON here. Kept tiny and dependency
// free since the wire shapes are part of §6, not this component.
func decodeHexResult(r interface{}) []byte {
	s, _ := r.(string)
	return hexOrNil(s)
}

func decodeUintResult(r interface{}) uint64 {
	switch v := r.(type) {
	case float64:
		return uint64(v)
	case uint64:
		return v
	default:
		return 0
	}
}

func decodeRuntimeVersion(r interface{}) (spec uint32, tx uint32) {
	m, ok := r.(map[string]interface{})
	if !ok {
		return 0, 0
	}
	if v, ok := m["specVersion"].(float64); ok {
		spec = uint32(v)
	}
	if v, ok := m["transactionVersion"].(float64); ok {
		tx = uint32(v)
	}
	return spec, tx
}

func decodeProperties(r interface{}) ChainProperties {
	m, ok := r.(map[string]interface{})
	if !ok {
		return ChainProperties{}
	}
	var props ChainProperties
	if v, ok := m["ss58Format"].(float64); ok {
		props.SS58Format = uint32(v)
	}
	if v, ok := m["tokenDecimals"].(float64); ok {
		props.TokenDecimals = uint32(v)
	}
	if v, ok := m["tokenSymbol"].(string); ok {
		props.TokenSymbol = v
	}
	return props
}

func hexOrNil(s string) []byte {
	s = strings.TrimPrefix(s, "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil
	}
	return b
}

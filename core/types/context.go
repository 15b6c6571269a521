package types

import (
	"github.com/meverselabs/boostfarm/common"
)

// Context is a single-request view of the persisted state. Every
// mutating operation runs against the top ContextData layer; a rejected
// request reverts its snapshot, so no partial mutation ever reaches the
// loader.
type Context struct {
	loader    Loader
	dataStack []*ContextData
}

// NewContext returns a Context
func NewContext(loader Loader) *Context {
	ctx := &Context{
		loader:    loader,
		dataStack: []*ContextData{NewContextData(loader, nil)},
	}
	return ctx
}

// TargetHeight returns the block height of the request
func (ctx *Context) TargetHeight() uint32 {
	return ctx.loader.TargetHeight()
}

// LastTimestamp returns the timestamp of the request in unix seconds
func (ctx *Context) LastTimestamp() uint64 {
	return ctx.loader.LastTimestamp()
}

// Top returns the top layer
func (ctx *Context) Top() *ContextData {
	return ctx.dataStack[len(ctx.dataStack)-1]
}

// ContractData returns the contract data
func (ctx *Context) ContractData(cont common.Address, name []byte) []byte {
	return ctx.Top().ContractData(cont, name)
}

// SetContractData inserts the contract data
func (ctx *Context) SetContractData(cont common.Address, name []byte, value []byte) {
	ctx.Top().SetContractData(cont, name, value)
}

// AccountData returns the account data
func (ctx *Context) AccountData(cont common.Address, addr common.Address, name []byte) []byte {
	return ctx.Top().AccountData(cont, addr, name)
}

// SetAccountData inserts the account data
func (ctx *Context) SetAccountData(cont common.Address, addr common.Address, name []byte, value []byte) {
	ctx.Top().SetAccountData(cont, addr, name, value)
}

// Snapshot pushes a layer and returns the snapshot number of it
func (ctx *Context) Snapshot() int {
	ctd := NewContextData(nil, ctx.Top())
	ctx.dataStack = append(ctx.dataStack, ctd)
	return len(ctx.dataStack)
}

// Revert removes layers down to the snapshot number
func (ctx *Context) Revert(sn int) {
	if len(ctx.dataStack) >= sn {
		ctx.dataStack = ctx.dataStack[:sn-1]
	}
}

// Commit merges layers down to the snapshot number
func (ctx *Context) Commit(sn int) {
	for len(ctx.dataStack) >= sn {
		ctd := ctx.Top()
		ctx.dataStack = ctx.dataStack[:len(ctx.dataStack)-1]
		ctd.CommitInto(ctx.Top())
	}
}

// StackSize returns the size of the layer stack
func (ctx *Context) StackSize() int {
	return len(ctx.dataStack)
}

// Changes drains the bottom layer. The host storage applies the
// returned key/value pairs after the request completes; a nil value
// means the key is removed.
func (ctx *Context) Changes() (map[string][]byte, map[string][]byte) {
	bottom := ctx.dataStack[0]
	return bottom.ContractDataMap, bottom.AccountDataMap
}

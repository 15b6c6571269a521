package types

import (
	"github.com/meverselabs/boostfarm/common"
)

// ExecFunc executes a method of another contract. It is injected by the
// host interactor; inside tests a stub stands in for the real one.
type ExecFunc func(cc *ContractContext, contAddr common.Address, methodName string, args []interface{}) ([]interface{}, error)

// ContractContext is a context bound to a (contract, caller) pair
type ContractContext struct {
	cont common.Address
	from common.Address
	ctx  *Context
	Exec ExecFunc
}

// ContractContext returns a ContractContext of the contract and the caller
func (ctx *Context) ContractContext(cont Contract, from common.Address) *ContractContext {
	cc := &ContractContext{
		cont: cont.Address(),
		from: from,
		ctx:  ctx,
	}
	return cc
}

// TargetHeight returns the block height of the request
func (cc *ContractContext) TargetHeight() uint32 {
	return cc.ctx.TargetHeight()
}

// LastTimestamp returns the timestamp of the request in unix seconds
func (cc *ContractContext) LastTimestamp() uint64 {
	return cc.ctx.LastTimestamp()
}

// From returns the caller address
func (cc *ContractContext) From() common.Address {
	return cc.from
}

// ContractData returns the contract data
func (cc *ContractContext) ContractData(name []byte) []byte {
	return cc.ctx.ContractData(cc.cont, name)
}

// SetContractData inserts the contract data
func (cc *ContractContext) SetContractData(name []byte, value []byte) {
	cc.ctx.SetContractData(cc.cont, name, value)
}

// AccountData returns the account data of the contract
func (cc *ContractContext) AccountData(addr common.Address, name []byte) []byte {
	return cc.ctx.AccountData(cc.cont, addr, name)
}

// SetAccountData inserts the account data of the contract
func (cc *ContractContext) SetAccountData(addr common.Address, name []byte, value []byte) {
	cc.ctx.SetAccountData(cc.cont, addr, name, value)
}

// Snapshot pushes a layer and returns the snapshot number of it
func (cc *ContractContext) Snapshot() int {
	return cc.ctx.Snapshot()
}

// Revert removes layers down to the snapshot number
func (cc *ContractContext) Revert(sn int) {
	cc.ctx.Revert(sn)
}

// Commit merges layers down to the snapshot number
func (cc *ContractContext) Commit(sn int) {
	cc.ctx.Commit(sn)
}

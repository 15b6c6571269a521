package util

import (
	"github.com/pkg/errors"

	"github.com/meverselabs/boostfarm/common"
	"github.com/meverselabs/boostfarm/common/bin"
	"github.com/meverselabs/boostfarm/contract/farming"
	"github.com/meverselabs/boostfarm/core/types"
)

// genesis timestamp of the test chain, far enough in the past that
// relative time math never underflows
const genesisTimestamp = uint64(1600000000)

// ExecHandler stands in for a contract reachable through cc.Exec
type ExecHandler func(methodName string, args []interface{}) ([]interface{}, error)

// Admin is the operator account of the test chain
var Admin = Account(1)

// Gateway is the transfer gateway account of the test chain
var Gateway = Account(2)

// Account returns a deterministic test address
func Account(i byte) common.Address {
	var addr common.Address
	addr[0] = i
	addr[common.AddressSize-1] = i
	return addr
}

// TestContext drives a farming contract against an in-memory store with
// a settable clock
type TestContext struct {
	loader *memLoader
	Ctx    *types.Context
	Cont   *farming.FarmingContract
	execs  map[common.Address]ExecHandler
}

// NewTestContext deploys a farming contract owned by Admin with the
// given policy; a nil policy selects the default
func NewTestContext(policy *farming.FarmingPolicy) (*TestContext, error) {
	tc := &TestContext{
		loader: newMemLoader(genesisTimestamp),
		execs:  map[common.Address]ExecHandler{},
	}
	tc.Ctx = types.NewContext(tc.loader)

	cont := &farming.FarmingContract{}
	cont.Init(Account(200), Admin)
	tc.Cont = cont

	construction := &farming.FarmingContractConstruction{
		Owner:           Admin,
		TransferGateway: Gateway,
		Policy:          policy,
	}
	cc := tc.CC(Admin)
	if err := cont.OnCreate(cc, bin.MustWriterToBytes(construction)); err != nil {
		return nil, err
	}
	return tc, nil
}

// MustNewTestContext is NewTestContext that panics on failure
func MustNewTestContext(policy *farming.FarmingPolicy) *TestContext {
	tc, err := NewTestContext(policy)
	if err != nil {
		panic(err)
	}
	return tc
}

// CC returns a contract context of the caller with the stub exec wired in
func (tc *TestContext) CC(from common.Address) *types.ContractContext {
	cc := tc.Ctx.ContractContext(tc.Cont, from)
	cc.Exec = tc.exec
	return cc
}

// SetExecHandler registers the stub behind the address for cc.Exec calls
func (tc *TestContext) SetExecHandler(addr common.Address, handler ExecHandler) {
	tc.execs[addr] = handler
}

// Sleep advances the chain clock by the given seconds and bumps the height
func (tc *TestContext) Sleep(seconds uint64) {
	tc.loader.timestamp += seconds
	tc.loader.height++
}

// SleepDays advances the chain clock by whole days
func (tc *TestContext) SleepDays(days uint64) {
	tc.Sleep(days * 86400)
}

// Now returns the chain clock in unix seconds
func (tc *TestContext) Now() uint64 {
	return tc.loader.timestamp
}

// Flush commits the accumulated bottom layer into the backing store,
// like a block boundary does on a real chain
func (tc *TestContext) Flush() {
	contractData, accountData := tc.Ctx.Changes()
	tc.loader.apply(contractData, accountData)
	tc.Ctx = types.NewContext(tc.loader)
}

func (tc *TestContext) exec(cc *types.ContractContext, contAddr common.Address, methodName string, args []interface{}) ([]interface{}, error) {
	handler, has := tc.execs[contAddr]
	if !has {
		return nil, errors.Errorf("not exist exec target %v", contAddr.String())
	}
	return handler(methodName, args)
}

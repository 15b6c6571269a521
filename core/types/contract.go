package types

import (
	"github.com/meverselabs/boostfarm/common"
)

// Contract defines chain contract functions
type Contract interface {
	Init(addr common.Address, master common.Address)
	Address() common.Address
	Master() common.Address
	OnCreate(cc *ContractContext, Args []byte) error
	Front() interface{}
}

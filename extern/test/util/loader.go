package util

import (
	"github.com/meverselabs/boostfarm/common"
)

// memLoader is the in-memory backing store of a test chain. The clock
// and height are settable so time-dependent behavior can be driven
// without waiting.
type memLoader struct {
	height    uint32
	timestamp uint64

	contractData map[string][]byte
	accountData  map[string][]byte
}

func newMemLoader(genesis uint64) *memLoader {
	return &memLoader{
		height:       1,
		timestamp:    genesis,
		contractData: map[string][]byte{},
		accountData:  map[string][]byte{},
	}
}

func (ld *memLoader) TargetHeight() uint32 {
	return ld.height
}

func (ld *memLoader) LastTimestamp() uint64 {
	return ld.timestamp
}

func contractDataKey(cont common.Address, name []byte) string {
	return string(cont[:]) + string(name)
}

func accountDataKey(cont common.Address, addr common.Address, name []byte) string {
	return string(cont[:]) + string(addr[:]) + string(name)
}

func (ld *memLoader) ContractData(cont common.Address, name []byte) []byte {
	return ld.contractData[contractDataKey(cont, name)]
}

func (ld *memLoader) AccountData(cont common.Address, addr common.Address, name []byte) []byte {
	return ld.accountData[accountDataKey(cont, addr, name)]
}

// apply folds committed changes into the store; nil values delete keys
func (ld *memLoader) apply(contractData map[string][]byte, accountData map[string][]byte) {
	for key, value := range contractData {
		if value == nil {
			delete(ld.contractData, key)
		} else {
			ld.contractData[key] = value
		}
	}
	for key, value := range accountData {
		if value == nil {
			delete(ld.accountData, key)
		} else {
			ld.accountData[key] = value
		}
	}
}

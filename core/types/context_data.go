package types

import (
	"github.com/meverselabs/boostfarm/common"
)

// ContextData is a layered read-through cache over the Loader. Reads
// fall through own entries, parent layers, then the loader; writes stay
// in the layer until it is committed into its parent. A nil value is a
// deletion marker.
type ContextData struct {
	loader          Loader
	Parent          *ContextData
	ContractDataMap map[string][]byte
	AccountDataMap  map[string][]byte
}

// NewContextData returns a ContextData
func NewContextData(loader Loader, Parent *ContextData) *ContextData {
	ctd := &ContextData{
		loader:          loader,
		Parent:          Parent,
		ContractDataMap: map[string][]byte{},
		AccountDataMap:  map[string][]byte{},
	}
	return ctd
}

func contractDataKey(cont common.Address, name []byte) string {
	bs := make([]byte, common.AddressSize+len(name))
	copy(bs, cont[:])
	copy(bs[common.AddressSize:], name)
	return string(bs)
}

func accountDataKey(cont common.Address, addr common.Address, name []byte) string {
	bs := make([]byte, common.AddressSize*2+len(name))
	copy(bs, cont[:])
	copy(bs[common.AddressSize:], addr[:])
	copy(bs[common.AddressSize*2:], name)
	return string(bs)
}

// ContractData returns the contract data from the top of the layers
func (ctd *ContextData) ContractData(cont common.Address, name []byte) []byte {
	key := contractDataKey(cont, name)
	if value, has := ctd.ContractDataMap[key]; has {
		return value
	}
	if ctd.Parent != nil {
		return ctd.Parent.ContractData(cont, name)
	}
	if ctd.loader != nil {
		return ctd.loader.ContractData(cont, name)
	}
	return nil
}

// SetContractData inserts the contract data to the layer
func (ctd *ContextData) SetContractData(cont common.Address, name []byte, value []byte) {
	ctd.ContractDataMap[contractDataKey(cont, name)] = value
}

// AccountData returns the account data from the top of the layers
func (ctd *ContextData) AccountData(cont common.Address, addr common.Address, name []byte) []byte {
	key := accountDataKey(cont, addr, name)
	if value, has := ctd.AccountDataMap[key]; has {
		return value
	}
	if ctd.Parent != nil {
		return ctd.Parent.AccountData(cont, addr, name)
	}
	if ctd.loader != nil {
		return ctd.loader.AccountData(cont, addr, name)
	}
	return nil
}

// SetAccountData inserts the account data to the layer
func (ctd *ContextData) SetAccountData(cont common.Address, addr common.Address, name []byte, value []byte) {
	ctd.AccountDataMap[accountDataKey(cont, addr, name)] = value
}

// CommitInto merges the layer into the parent layer
func (ctd *ContextData) CommitInto(Parent *ContextData) {
	for key, value := range ctd.ContractDataMap {
		Parent.ContractDataMap[key] = value
	}
	for key, value := range ctd.AccountDataMap {
		Parent.AccountDataMap[key] = value
	}
}

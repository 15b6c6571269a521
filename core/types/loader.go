package types

import (
	"github.com/meverselabs/boostfarm/common"
)

// Loader is the storage boundary of the engine. Persisted records are
// opaque byte slices keyed by an owner address and a name; the host
// environment decides how they are framed on disk.
type Loader interface {
	TargetHeight() uint32
	LastTimestamp() uint64
	ContractData(cont common.Address, name []byte) []byte
	AccountData(cont common.Address, addr common.Address, name []byte) []byte
}

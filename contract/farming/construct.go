package farming

import (
	"io"

	"github.com/meverselabs/boostfarm/common"
	"github.com/meverselabs/boostfarm/common/bin"
)

// FarmingContractConstruction is the creation argument of the contract.
// A nil policy selects the compiled-in default.
type FarmingContractConstruction struct {
	Owner           common.Address
	TransferGateway common.Address
	Policy          *FarmingPolicy
}

func (s *FarmingContractConstruction) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Address(w, s.Owner); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, s.TransferGateway); err != nil {
		return sum, err
	}
	if sum, err := sw.Bool(w, s.Policy != nil); err != nil {
		return sum, err
	}
	if s.Policy != nil {
		if sum, err := sw.WriterTo(w, s.Policy); err != nil {
			return sum, err
		}
	}
	return sw.Sum(), nil
}

func (s *FarmingContractConstruction) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.Address(r, &s.Owner); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &s.TransferGateway); err != nil {
		return sum, err
	}
	var hasPolicy bool
	if sum, err := sr.Bool(r, &hasPolicy); err != nil {
		return sum, err
	}
	if hasPolicy {
		s.Policy = &FarmingPolicy{}
		if sum, err := sr.ReaderFrom(r, s.Policy); err != nil {
			return sum, err
		}
	}
	return sr.Sum(), nil
}

package farming

import (
	"io"

	"github.com/pkg/errors"

	"github.com/meverselabs/boostfarm/common/amount"
	"github.com/meverselabs/boostfarm/common/bin"
)

// seedVersion is the persisted shape tag of the Seed record. Version 0
// predates slashing and deposit minimums and is upgraded on read.
const seedVersion = uint8(1)

// Seed is a stakeable token pool with the farms attached to it
type Seed struct {
	SeedID             string
	Decimals           uint8
	TotalStakedAmount  *amount.Amount
	TotalSeedPower     *amount.Amount
	MinDeposit         *amount.Amount
	SlashRateBps       uint16
	MinLockingDuration uint64
	NextFarmIndex      uint32
	FarmIDs            []string
	SlashedBalance     *amount.Amount
}

// NewSeed returns a Seed with zero balances
func NewSeed(seedID string, decimals uint8) *Seed {
	return &Seed{
		SeedID:            seedID,
		Decimals:          decimals,
		TotalStakedAmount: amount.NewAmount(0, 0),
		TotalSeedPower:    amount.NewAmount(0, 0),
		MinDeposit:        amount.NewAmount(0, 0),
		SlashedBalance:    amount.NewAmount(0, 0),
	}
}

func (s *Seed) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Uint8(w, seedVersion); err != nil {
		return sum, err
	}
	if sum, err := sw.String(w, s.SeedID); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint8(w, s.Decimals); err != nil {
		return sum, err
	}
	if sum, err := sw.Amount(w, s.TotalStakedAmount); err != nil {
		return sum, err
	}
	if sum, err := sw.Amount(w, s.TotalSeedPower); err != nil {
		return sum, err
	}
	if sum, err := sw.Amount(w, s.MinDeposit); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint16(w, s.SlashRateBps); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint64(w, s.MinLockingDuration); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint32(w, s.NextFarmIndex); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint32(w, uint32(len(s.FarmIDs))); err != nil {
		return sum, err
	}
	for _, farmID := range s.FarmIDs {
		if sum, err := sw.String(w, farmID); err != nil {
			return sum, err
		}
	}
	if sum, err := sw.Amount(w, s.SlashedBalance); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (s *Seed) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	var version uint8
	if sum, err := sr.Uint8(r, &version); err != nil {
		return sum, err
	}
	switch version {
	case 0:
		return s.readV0(r, sr)
	case 1:
		return s.readV1(r, sr)
	default:
		return sr.Sum(), errors.Errorf("unknown seed record version %d", version)
	}
}

func (s *Seed) readV1(r io.Reader, sr *bin.SumReader) (int64, error) {
	if sum, err := sr.String(r, &s.SeedID); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint8(r, &s.Decimals); err != nil {
		return sum, err
	}
	if sum, err := sr.Amount(r, &s.TotalStakedAmount); err != nil {
		return sum, err
	}
	if sum, err := sr.Amount(r, &s.TotalSeedPower); err != nil {
		return sum, err
	}
	if sum, err := sr.Amount(r, &s.MinDeposit); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint16(r, &s.SlashRateBps); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint64(r, &s.MinLockingDuration); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint32(r, &s.NextFarmIndex); err != nil {
		return sum, err
	}
	var Len uint32
	if sum, err := sr.Uint32(r, &Len); err != nil {
		return sum, err
	}
	s.FarmIDs = make([]string, 0, Len)
	for i := uint32(0); i < Len; i++ {
		var farmID string
		if sum, err := sr.String(r, &farmID); err != nil {
			return sum, err
		}
		s.FarmIDs = append(s.FarmIDs, farmID)
	}
	if sum, err := sr.Amount(r, &s.SlashedBalance); err != nil {
		return sum, err
	}
	return sr.Sum(), nil
}

// readV0 upgrades the pre-slashing record shape to the current one
func (s *Seed) readV0(r io.Reader, sr *bin.SumReader) (int64, error) {
	if sum, err := sr.String(r, &s.SeedID); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint8(r, &s.Decimals); err != nil {
		return sum, err
	}
	if sum, err := sr.Amount(r, &s.TotalStakedAmount); err != nil {
		return sum, err
	}
	if sum, err := sr.Amount(r, &s.TotalSeedPower); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint32(r, &s.NextFarmIndex); err != nil {
		return sum, err
	}
	var Len uint32
	if sum, err := sr.Uint32(r, &Len); err != nil {
		return sum, err
	}
	s.FarmIDs = make([]string, 0, Len)
	for i := uint32(0); i < Len; i++ {
		var farmID string
		if sum, err := sr.String(r, &farmID); err != nil {
			return sum, err
		}
		s.FarmIDs = append(s.FarmIDs, farmID)
	}
	s.MinDeposit = amount.NewAmount(0, 0)
	s.SlashedBalance = amount.NewAmount(0, 0)
	return sr.Sum(), nil
}

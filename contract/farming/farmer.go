package farming

import (
	"io"
	"sort"

	"github.com/pkg/errors"

	"github.com/meverselabs/boostfarm/common/amount"
	"github.com/meverselabs/boostfarm/common/bin"
	"github.com/meverselabs/boostfarm/common/fixedpoint"
)

const farmerSeedVersion = uint8(1)

// FarmerSeed is the record of one farmer's stake in one seed
type FarmerSeed struct {
	SeedID          string
	FreeAmount      *amount.Amount
	LockedAmount    *amount.Amount
	XLockedAmount   *amount.Amount
	UnlockTimestamp uint64
	LockDuration    uint64
	BoostRatios     map[string]uint32
	UserRPS         map[string]*fixedpoint.RPS
}

// NewFarmerSeed returns a FarmerSeed with zero balances
func NewFarmerSeed(seedID string) *FarmerSeed {
	return &FarmerSeed{
		SeedID:        seedID,
		FreeAmount:    amount.NewAmount(0, 0),
		LockedAmount:  amount.NewAmount(0, 0),
		XLockedAmount: amount.NewAmount(0, 0),
		BoostRatios:   map[string]uint32{},
		UserRPS:       map[string]*fixedpoint.RPS{},
	}
}

// StakedBalance returns the raw token balance staked into the seed
func (fs *FarmerSeed) StakedBalance() *amount.Amount {
	return fs.FreeAmount.Add(fs.LockedAmount)
}

// SeedPower returns the distribution weight of the record: the base
// stake plus the lock bonus, scaled up by the cached booster ratios
func (fs *FarmerSeed) SeedPower() *amount.Amount {
	base := fs.FreeAmount.Add(fs.LockedAmount).Add(fs.XLockedAmount)
	if !base.IsPlus() {
		return amount.NewAmount(0, 0)
	}
	var sum uint64
	for _, bps := range fs.BoostRatios {
		sum += uint64(bps)
	}
	if sum == 0 {
		return base
	}
	return base.Add(base.MulC(int64(sum)).DivC(10000))
}

// IsEmpty reports whether the record holds no stake. A zero-stake
// record accrues nothing, and a later deposit re-snapshots every
// accumulator before the stake takes effect, so it is safe to prune.
func (fs *FarmerSeed) IsEmpty() bool {
	return !fs.FreeAmount.IsPlus() && !fs.LockedAmount.IsPlus()
}

func (fs *FarmerSeed) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Uint8(w, farmerSeedVersion); err != nil {
		return sum, err
	}
	if sum, err := sw.String(w, fs.SeedID); err != nil {
		return sum, err
	}
	if sum, err := sw.Amount(w, fs.FreeAmount); err != nil {
		return sum, err
	}
	if sum, err := sw.Amount(w, fs.LockedAmount); err != nil {
		return sum, err
	}
	if sum, err := sw.Amount(w, fs.XLockedAmount); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint64(w, fs.UnlockTimestamp); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint64(w, fs.LockDuration); err != nil {
		return sum, err
	}

	boosterIDs := make([]string, 0, len(fs.BoostRatios))
	for boosterID := range fs.BoostRatios {
		boosterIDs = append(boosterIDs, boosterID)
	}
	sort.Strings(boosterIDs)
	if sum, err := sw.Uint32(w, uint32(len(boosterIDs))); err != nil {
		return sum, err
	}
	for _, boosterID := range boosterIDs {
		if sum, err := sw.String(w, boosterID); err != nil {
			return sum, err
		}
		if sum, err := sw.Uint32(w, fs.BoostRatios[boosterID]); err != nil {
			return sum, err
		}
	}

	farmIDs := make([]string, 0, len(fs.UserRPS))
	for farmID := range fs.UserRPS {
		farmIDs = append(farmIDs, farmID)
	}
	sort.Strings(farmIDs)
	if sum, err := sw.Uint32(w, uint32(len(farmIDs))); err != nil {
		return sum, err
	}
	for _, farmID := range farmIDs {
		if sum, err := sw.String(w, farmID); err != nil {
			return sum, err
		}
		if sum, err := sw.BigInt(w, fs.UserRPS[farmID].Int); err != nil {
			return sum, err
		}
	}
	return sw.Sum(), nil
}

func (fs *FarmerSeed) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	var version uint8
	if sum, err := sr.Uint8(r, &version); err != nil {
		return sum, err
	}
	switch version {
	case 0:
		return fs.readV0(r, sr)
	case 1:
		return fs.readV1(r, sr)
	default:
		return sr.Sum(), errors.Errorf("unknown farmer seed record version %d", version)
	}
}

func (fs *FarmerSeed) readV1(r io.Reader, sr *bin.SumReader) (int64, error) {
	if sum, err := sr.String(r, &fs.SeedID); err != nil {
		return sum, err
	}
	if sum, err := sr.Amount(r, &fs.FreeAmount); err != nil {
		return sum, err
	}
	if sum, err := sr.Amount(r, &fs.LockedAmount); err != nil {
		return sum, err
	}
	if sum, err := sr.Amount(r, &fs.XLockedAmount); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint64(r, &fs.UnlockTimestamp); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint64(r, &fs.LockDuration); err != nil {
		return sum, err
	}

	var Len uint32
	if sum, err := sr.Uint32(r, &Len); err != nil {
		return sum, err
	}
	fs.BoostRatios = make(map[string]uint32, Len)
	for i := uint32(0); i < Len; i++ {
		var boosterID string
		if sum, err := sr.String(r, &boosterID); err != nil {
			return sum, err
		}
		var bps uint32
		if sum, err := sr.Uint32(r, &bps); err != nil {
			return sum, err
		}
		fs.BoostRatios[boosterID] = bps
	}

	if sum, err := sr.Uint32(r, &Len); err != nil {
		return sum, err
	}
	fs.UserRPS = make(map[string]*fixedpoint.RPS, Len)
	for i := uint32(0); i < Len; i++ {
		var farmID string
		if sum, err := sr.String(r, &farmID); err != nil {
			return sum, err
		}
		var bs []byte
		if sum, err := sr.Bytes(r, &bs); err != nil {
			return sum, err
		}
		fs.UserRPS[farmID] = fixedpoint.FromBytes(bs)
	}
	return sr.Sum(), nil
}

// readV0 upgrades the pre-locking record shape: only a free balance and
// the accumulator snapshots existed.
func (fs *FarmerSeed) readV0(r io.Reader, sr *bin.SumReader) (int64, error) {
	if sum, err := sr.String(r, &fs.SeedID); err != nil {
		return sum, err
	}
	if sum, err := sr.Amount(r, &fs.FreeAmount); err != nil {
		return sum, err
	}
	var Len uint32
	if sum, err := sr.Uint32(r, &Len); err != nil {
		return sum, err
	}
	fs.UserRPS = make(map[string]*fixedpoint.RPS, Len)
	for i := uint32(0); i < Len; i++ {
		var farmID string
		if sum, err := sr.String(r, &farmID); err != nil {
			return sum, err
		}
		var bs []byte
		if sum, err := sr.Bytes(r, &bs); err != nil {
			return sum, err
		}
		fs.UserRPS[farmID] = fixedpoint.FromBytes(bs)
	}
	fs.LockedAmount = amount.NewAmount(0, 0)
	fs.XLockedAmount = amount.NewAmount(0, 0)
	fs.BoostRatios = map[string]uint32{}
	return sr.Sum(), nil
}

package farming

import (
	"bytes"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/meverselabs/boostfarm/common/bin"
)

// LockBonusTier maps a minimum lock duration to the extra seed power it
// grants, in basis points of the locked amount
type LockBonusTier struct {
	MinDuration uint64 `toml:"min_duration"`
	BonusBps    uint32 `toml:"bonus_bps"`
}

// FarmingPolicy holds the operator supplied tables and bounds of the
// engine. It is persisted at contract creation and may be loaded from a
// toml file.
type FarmingPolicy struct {
	MaxFarmsPerSeed            uint32          `toml:"max_farms_per_seed"`
	MaxAffectedSeedsPerBooster uint32          `toml:"max_affected_seeds_per_booster"`
	MaxAffectedFarmsPerBooster uint32          `toml:"max_affected_farms_per_booster"`
	FarmExpireGrace            uint64          `toml:"farm_expire_grace"`
	LockBonusTiers             []LockBonusTier `toml:"lock_bonus_tiers"`
}

// DefaultPolicy returns the compiled-in policy
func DefaultPolicy() *FarmingPolicy {
	return &FarmingPolicy{
		MaxFarmsPerSeed:            32,
		MaxAffectedSeedsPerBooster: 16,
		MaxAffectedFarmsPerBooster: 64,
		FarmExpireGrace:            30 * 86400,
		LockBonusTiers: []LockBonusTier{
			{MinDuration: 30 * 86400, BonusBps: 2500},
			{MinDuration: 90 * 86400, BonusBps: 5000},
			{MinDuration: 180 * 86400, BonusBps: 7500},
			{MinDuration: 360 * 86400, BonusBps: 10000},
		},
	}
}

// Validate rejects zero bounds and flags a non-monotonic bonus table.
// A shorter lock paying more than a longer one is almost always a
// misconfiguration, so it is surfaced instead of silently reordered.
func (p *FarmingPolicy) Validate() error {
	if p.MaxFarmsPerSeed == 0 {
		return errors.New("max_farms_per_seed must be positive")
	}
	if p.MaxAffectedSeedsPerBooster == 0 {
		return errors.New("max_affected_seeds_per_booster must be positive")
	}
	if p.MaxAffectedFarmsPerBooster == 0 {
		return errors.New("max_affected_farms_per_booster must be positive")
	}
	for i := 1; i < len(p.LockBonusTiers); i++ {
		prev := p.LockBonusTiers[i-1]
		tier := p.LockBonusTiers[i]
		if tier.MinDuration <= prev.MinDuration {
			return errors.Errorf("lock bonus tier %d duration is not increasing", i)
		}
		if tier.BonusBps < prev.BonusBps {
			return errors.Errorf("lock bonus tier %d pays less than the shorter tier %d", i, i-1)
		}
	}
	return nil
}

// LockBonusBps returns the bonus of the greatest tier at or under the duration
func (p *FarmingPolicy) LockBonusBps(duration uint64) uint32 {
	var bonus uint32
	for _, tier := range p.LockBonusTiers {
		if tier.MinDuration <= duration && tier.BonusBps > bonus {
			bonus = tier.BonusBps
		}
	}
	return bonus
}

func (p *FarmingPolicy) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Uint32(w, p.MaxFarmsPerSeed); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint32(w, p.MaxAffectedSeedsPerBooster); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint32(w, p.MaxAffectedFarmsPerBooster); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint64(w, p.FarmExpireGrace); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint32(w, uint32(len(p.LockBonusTiers))); err != nil {
		return sum, err
	}
	for _, tier := range p.LockBonusTiers {
		if sum, err := sw.Uint64(w, tier.MinDuration); err != nil {
			return sum, err
		}
		if sum, err := sw.Uint32(w, tier.BonusBps); err != nil {
			return sum, err
		}
	}
	return sw.Sum(), nil
}

func (p *FarmingPolicy) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.Uint32(r, &p.MaxFarmsPerSeed); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint32(r, &p.MaxAffectedSeedsPerBooster); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint32(r, &p.MaxAffectedFarmsPerBooster); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint64(r, &p.FarmExpireGrace); err != nil {
		return sum, err
	}
	var Len uint32
	if sum, err := sr.Uint32(r, &Len); err != nil {
		return sum, err
	}
	p.LockBonusTiers = make([]LockBonusTier, 0, Len)
	for i := uint32(0); i < Len; i++ {
		var tier LockBonusTier
		if sum, err := sr.Uint64(r, &tier.MinDuration); err != nil {
			return sum, err
		}
		if sum, err := sr.Uint32(r, &tier.BonusBps); err != nil {
			return sum, err
		}
		p.LockBonusTiers = append(p.LockBonusTiers, tier)
	}
	return sr.Sum(), nil
}

// LoadPolicyFile parse the policy from the file of the path
func LoadPolicyFile(path string) (*FarmingPolicy, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer file.Close()

	return LoadPolicyReader(file)
}

// LoadPolicyString parse the policy from the string
func LoadPolicyString(data string) (*FarmingPolicy, error) {
	return LoadPolicyReader(bytes.NewReader([]byte(data)))
}

// LoadPolicyReader parse the policy from the reader
func LoadPolicyReader(r io.Reader) (*FarmingPolicy, error) {
	p := DefaultPolicy()
	if _, err := toml.NewDecoder(r).Decode(p); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

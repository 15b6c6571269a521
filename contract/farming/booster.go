package farming

import (
	"io"
	"math"
	"math/big"
	"sort"

	"github.com/pkg/errors"

	"github.com/meverselabs/boostfarm/common/amount"
	"github.com/meverselabs/boostfarm/common/bin"
)

const boosterVersion = uint8(1)

// BoosterEntry maps a booster seed to the seeds it amplifies and the
// log base of the amplification curve per affected seed
type BoosterEntry struct {
	BoosterID     string
	AffectedSeeds map[string]uint32
}

// SortedAffectedSeeds returns the affected seed ids in a stable order
func (b *BoosterEntry) SortedAffectedSeeds() []string {
	seedIDs := make([]string, 0, len(b.AffectedSeeds))
	for seedID := range b.AffectedSeeds {
		seedIDs = append(seedIDs, seedID)
	}
	sort.Strings(seedIDs)
	return seedIDs
}

// BoostRatio returns the amplification of a booster balance in basis
// points. The curve is logarithmic so the first whole token contributes
// nothing and larger holdings grow the multiplier slowly. The float
// intermediate is floored to basis points before it ever reaches
// persisted state.
func BoostRatio(balance *amount.Amount, decimals uint8, logBase uint32) uint32 {
	if balance == nil || !balance.IsPlus() || logBase < 2 {
		return 0
	}
	units := new(big.Float).SetInt(balance.Int)
	div := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	units.Quo(units, div)
	v, _ := units.Float64()
	if v <= 1 {
		return 0
	}
	ratio := math.Log(v) / math.Log(float64(logBase))
	return uint32(math.Floor(ratio * 10000))
}

func (b *BoosterEntry) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Uint8(w, boosterVersion); err != nil {
		return sum, err
	}
	if sum, err := sw.String(w, b.BoosterID); err != nil {
		return sum, err
	}
	seedIDs := b.SortedAffectedSeeds()
	if sum, err := sw.Uint32(w, uint32(len(seedIDs))); err != nil {
		return sum, err
	}
	for _, seedID := range seedIDs {
		if sum, err := sw.String(w, seedID); err != nil {
			return sum, err
		}
		if sum, err := sw.Uint32(w, b.AffectedSeeds[seedID]); err != nil {
			return sum, err
		}
	}
	return sw.Sum(), nil
}

func (b *BoosterEntry) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	var version uint8
	if sum, err := sr.Uint8(r, &version); err != nil {
		return sum, err
	}
	if version != boosterVersion {
		return sr.Sum(), errors.Errorf("unknown booster record version %d", version)
	}
	if sum, err := sr.String(r, &b.BoosterID); err != nil {
		return sum, err
	}
	var Len uint32
	if sum, err := sr.Uint32(r, &Len); err != nil {
		return sum, err
	}
	b.AffectedSeeds = make(map[string]uint32, Len)
	for i := uint32(0); i < Len; i++ {
		var seedID string
		if sum, err := sr.String(r, &seedID); err != nil {
			return sum, err
		}
		var logBase uint32
		if sum, err := sr.Uint32(r, &logBase); err != nil {
			return sum, err
		}
		b.AffectedSeeds[seedID] = logBase
	}
	return sr.Sum(), nil
}

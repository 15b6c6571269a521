package farming

import (
	"math"
	"math/big"

	"github.com/pkg/errors"

	"github.com/meverselabs/boostfarm/common/amount"
)

// applyLock moves a freshly deposited amount into the locked balance and
// grants the tiered bonus as extra locked power. A relock may extend the
// unlock time but never pull it closer. A duration that would wrap the
// unlock timestamp past the clock maximum is rejected, otherwise the
// wrapped lock would be born mature with the full bonus.
func applyLock(policy *FarmingPolicy, seed *Seed, fs *FarmerSeed, am *amount.Amount, duration uint64, now uint64) error {
	if duration < seed.MinLockingDuration {
		return errors.WithStack(ErrShortLockDuration)
	}
	if duration > math.MaxUint64-now {
		return errors.WithStack(ErrInvalidLockDuration)
	}
	unlock := now + duration
	if fs.LockedAmount.IsPlus() && unlock < fs.UnlockTimestamp {
		return errors.WithStack(ErrShortenedLock)
	}
	bonus := amount.NewAmount(0, 0)
	if bps := policy.LockBonusBps(duration); bps > 0 {
		bonus = am.MulC(int64(bps)).DivC(10000)
	}
	fs.LockedAmount = fs.LockedAmount.Add(am)
	fs.XLockedAmount = fs.XLockedAmount.Add(bonus)
	if unlock > fs.UnlockTimestamp {
		fs.UnlockTimestamp = unlock
	}
	fs.LockDuration = duration
	return nil
}

// removeLocked takes the given amount out of the locked balance and
// retires the matching share of the lock bonus. The bonus share is
// floored except on a full removal, which clears it exactly so no dust
// power survives the stake.
func removeLocked(fs *FarmerSeed, am *amount.Amount) error {
	if fs.LockedAmount.Less(am) {
		return errors.WithStack(ErrInsufficientLockedBalance)
	}
	if fs.LockedAmount.Equal(am) {
		fs.LockedAmount = amount.NewAmount(0, 0)
		fs.XLockedAmount = amount.NewAmount(0, 0)
		fs.UnlockTimestamp = 0
		fs.LockDuration = 0
		return nil
	}
	x := new(big.Int).Mul(fs.XLockedAmount.Int, am.Int)
	x.Div(x, fs.LockedAmount.Int)
	fs.XLockedAmount = fs.XLockedAmount.Sub(&amount.Amount{Int: x})
	fs.LockedAmount = fs.LockedAmount.Sub(am)
	return nil
}

// slashAmount returns the penalty of force-releasing the locked amount
// before maturity, floored to the nearest integer unit
func slashAmount(seed *Seed, locked *amount.Amount) *amount.Amount {
	if seed.SlashRateBps == 0 {
		return amount.NewAmount(0, 0)
	}
	return locked.MulC(int64(seed.SlashRateBps)).DivC(10000)
}

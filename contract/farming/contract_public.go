package farming

import (
	"github.com/pkg/errors"

	"github.com/meverselabs/boostfarm/common"
	"github.com/meverselabs/boostfarm/common/amount"
	"github.com/meverselabs/boostfarm/core/types"
)

//////////////////////////////////////////////////
// Public Farmer Functions
//////////////////////////////////////////////////

// Deposit stakes the amount into the seed for the caller. A positive
// lock duration locks the amount for extra power instead of keeping it
// freely withdrawable. The stake takes effect only after the farms are
// settled at the old weight.
func (cont *FarmingContract) Deposit(cc *types.ContractContext, seedID string, am *amount.Amount, lockDuration uint64) (err error) {
	if am == nil || !am.IsPlus() {
		return errors.WithStack(ErrInvalidAmount)
	}
	sn := cc.Snapshot()
	defer func() {
		if err != nil {
			cc.Revert(sn)
		} else {
			cc.Commit(sn)
		}
	}()

	cache := newSeedCache(cc)
	seed, err := cache.Seed(seedID)
	if err != nil {
		return err
	}
	if am.Less(seed.MinDeposit) {
		return errors.WithStack(ErrBelowMinimumDeposit)
	}
	from := cc.From()

	fs, _, err := cont.settle(cc, cache, from, seed)
	if err != nil {
		return err
	}
	oldPower := fs.SeedPower()
	if lockDuration > 0 {
		if err := applyLock(cont.Policy(cc), seed, fs, am, lockDuration, cc.LastTimestamp()); err != nil {
			return err
		}
	} else {
		fs.FreeAmount = fs.FreeAmount.Add(am)
	}
	seed.TotalStakedAmount = seed.TotalStakedAmount.Add(am)

	ratios, err := cont.computeBoostRatios(cc, cache, from, seedID)
	if err != nil {
		return err
	}
	fs.BoostRatios = ratios
	seed.TotalSeedPower = seed.TotalSeedPower.Sub(oldPower).Add(fs.SeedPower())
	if err := cont.saveFarmerSeed(cc, from, fs); err != nil {
		return err
	}
	if err := cache.Save(seed); err != nil {
		return err
	}
	return cont.updateImpactedSeeds(cc, cache, from, seedID)
}

// Withdraw unstakes the amount, free balance first. Taking out an
// immature locked balance requires force and pays the slash of the seed
// into its slash pot; passing force when it is not needed is rejected so
// a farmer never consents to a penalty that cannot apply.
func (cont *FarmingContract) Withdraw(cc *types.ContractContext, seedID string, am *amount.Amount, force bool) (returned *amount.Amount, slashed *amount.Amount, err error) {
	if am == nil || !am.IsPlus() {
		return nil, nil, errors.WithStack(ErrInvalidAmount)
	}
	sn := cc.Snapshot()
	defer func() {
		if err != nil {
			cc.Revert(sn)
		} else {
			cc.Commit(sn)
		}
	}()

	cache := newSeedCache(cc)
	seed, err := cache.Seed(seedID)
	if err != nil {
		return nil, nil, err
	}
	from := cc.From()
	if cont.farmerSeed(cc, from, seedID) == nil {
		return nil, nil, errors.WithStack(ErrNotStakedSeed)
	}

	fs, _, err := cont.settle(cc, cache, from, seed)
	if err != nil {
		return nil, nil, err
	}
	if fs.StakedBalance().Less(am) {
		return nil, nil, errors.WithStack(ErrInsufficientBalance)
	}
	oldPower := fs.SeedPower()

	fromFree := am
	if fs.FreeAmount.Less(am) {
		fromFree = fs.FreeAmount
	}
	needLocked := am.Sub(fromFree)
	now := cc.LastTimestamp()

	slashed = amount.NewAmount(0, 0)
	if needLocked.IsPlus() {
		if now < fs.UnlockTimestamp {
			if !force {
				return nil, nil, errors.WithStack(ErrLockedBalance)
			}
			slashed = slashAmount(seed, needLocked)
			seed.SlashedBalance = seed.SlashedBalance.Add(slashed)
		} else if force {
			return nil, nil, errors.WithStack(ErrUnnecessaryForce)
		}
		if err := removeLocked(fs, needLocked); err != nil {
			return nil, nil, err
		}
	} else if force {
		return nil, nil, errors.WithStack(ErrUnnecessaryForce)
	}
	fs.FreeAmount = fs.FreeAmount.Sub(fromFree)
	seed.TotalStakedAmount = seed.TotalStakedAmount.Sub(am)

	ratios, err := cont.computeBoostRatios(cc, cache, from, seedID)
	if err != nil {
		return nil, nil, err
	}
	fs.BoostRatios = ratios
	seed.TotalSeedPower = seed.TotalSeedPower.Sub(oldPower).Add(fs.SeedPower())
	if err := cont.saveFarmerSeed(cc, from, fs); err != nil {
		return nil, nil, err
	}
	if err := cache.Save(seed); err != nil {
		return nil, nil, err
	}
	if err := cont.updateImpactedSeeds(cc, cache, from, seedID); err != nil {
		return nil, nil, err
	}
	return am.Sub(slashed), slashed, nil
}

// Claim settles the caller's stake in the seed and returns the newly
// harvested reward by token. The harvest lands on the internal reward
// ledger; WithdrawReward moves it out.
func (cont *FarmingContract) Claim(cc *types.ContractContext, seedID string) (harvested map[common.Address]*amount.Amount, err error) {
	sn := cc.Snapshot()
	defer func() {
		if err != nil {
			cc.Revert(sn)
		} else {
			cc.Commit(sn)
		}
	}()

	cache := newSeedCache(cc)
	seed, err := cache.Seed(seedID)
	if err != nil {
		return nil, err
	}
	from := cc.From()
	if cont.farmerSeed(cc, from, seedID) == nil {
		return nil, errors.WithStack(ErrNotStakedSeed)
	}

	fs, rewardByToken, err := cont.settle(cc, cache, from, seed)
	if err != nil {
		return nil, err
	}
	if err := cont.saveFarmerSeed(cc, from, fs); err != nil {
		return nil, err
	}
	return rewardByToken, nil
}

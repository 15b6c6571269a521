package farming

import (
	"github.com/pkg/errors"

	"github.com/meverselabs/boostfarm/common"
	"github.com/meverselabs/boostfarm/common/amount"
	"github.com/meverselabs/boostfarm/common/fixedpoint"
	"github.com/meverselabs/boostfarm/core/types"
)

// settle advances every farm of the seed to the current timestamp and
// harvests the farmer's accrued reward into the internal reward ledger.
// It must run before any stake or booster mutation so the accrual up to
// now is charged at the old weight. The returned record is not saved;
// the caller mutates it further and persists it.
func (cont *FarmingContract) settle(cc *types.ContractContext, cache *seedCache, addr common.Address, seed *Seed) (*FarmerSeed, map[common.Address]*amount.Amount, error) {
	now := cc.LastTimestamp()
	fs := cont.farmerSeed(cc, addr, seed.SeedID)
	if fs == nil {
		fs = NewFarmerSeed(seed.SeedID)
	}
	power := fs.SeedPower()
	rewardByToken := map[common.Address]*amount.Amount{}
	for _, farmID := range seed.FarmIDs {
		farm, err := cont.loadFarm(cc, farmID)
		if err != nil {
			return nil, nil, err
		}
		if !farm.TotalRewardDeposited.IsPlus() {
			// nothing can have been emitted yet
			continue
		}
		if err := farm.Advance(seed.TotalSeedPower, now); err != nil {
			return nil, nil, err
		}

		if power.IsPlus() {
			// a missing snapshot reads as zero: the accumulator was zero
			// when the farm entered this seed's settle set, and any growth
			// since then happened with this stake counted in the seed power
			userRPS := fs.UserRPS[farmID]
			if userRPS == nil {
				userRPS = fixedpoint.Zero()
			}
			diff, err := farm.RewardPerShare.Sub(userRPS)
			if err != nil {
				return nil, nil, err
			}
			reward := diff.MulFloor(power)
			if reward.IsPlus() {
				farm.TotalRewardClaimed = farm.TotalRewardClaimed.Add(reward)
				if farm.TotalDistributed.Less(farm.TotalRewardClaimed) {
					return nil, nil, errors.Errorf("claimed reward exceeds distributed reward on farm %v", farmID)
				}
				cont.addFarmerReward(cc, addr, farm.RewardToken, reward)
				if prev, has := rewardByToken[farm.RewardToken]; has {
					rewardByToken[farm.RewardToken] = prev.Add(reward)
				} else {
					rewardByToken[farm.RewardToken] = reward
				}
			}
		}
		fs.UserRPS[farmID] = farm.RewardPerShare.Clone()
		if err := cont.saveFarm(cc, farm); err != nil {
			return nil, nil, err
		}
	}

	// snapshots of farms detached from the seed accrue nothing anymore
	for farmID := range fs.UserRPS {
		if !hasInList(seed.FarmIDs, farmID) {
			delete(fs.UserRPS, farmID)
		}
	}
	return fs, rewardByToken, nil
}

// computeBoostRatios recalculates the booster amplification of the
// farmer's stake in the target seed from the current booster registry
// and the farmer's balances in the booster seeds. Zero ratios are left
// out so an empty map means no amplification at all.
func (cont *FarmingContract) computeBoostRatios(cc *types.ContractContext, cache *seedCache, addr common.Address, seedID string) (map[string]uint32, error) {
	ratios := map[string]uint32{}
	for _, boosterID := range cont.BoosterIDs(cc) {
		if boosterID == seedID {
			continue
		}
		entry := cont.loadBooster(cc, boosterID)
		if entry == nil {
			continue
		}
		logBase, has := entry.AffectedSeeds[seedID]
		if !has {
			continue
		}
		bfs := cont.farmerSeed(cc, addr, boosterID)
		if bfs == nil {
			continue
		}
		boosterSeed, err := cache.Seed(boosterID)
		if err != nil {
			return nil, err
		}
		bps := BoostRatio(bfs.StakedBalance(), boosterSeed.Decimals, logBase)
		if bps > 0 {
			ratios[boosterID] = bps
		}
	}
	return ratios, nil
}

// updateImpactedSeeds propagates a balance change in a booster seed into
// every seed it amplifies: each affected stake of the farmer is settled
// at its old power, then re-weighted with the fresh ratio.
func (cont *FarmingContract) updateImpactedSeeds(cc *types.ContractContext, cache *seedCache, addr common.Address, boosterID string) error {
	entry := cont.loadBooster(cc, boosterID)
	if entry == nil {
		return nil
	}
	for _, targetID := range entry.SortedAffectedSeeds() {
		if cont.farmerSeed(cc, addr, targetID) == nil {
			continue
		}
		targetSeed, err := cache.Seed(targetID)
		if err != nil {
			return err
		}
		fs, _, err := cont.settle(cc, cache, addr, targetSeed)
		if err != nil {
			return err
		}
		oldPower := fs.SeedPower()
		ratios, err := cont.computeBoostRatios(cc, cache, addr, targetID)
		if err != nil {
			return err
		}
		fs.BoostRatios = ratios
		targetSeed.TotalSeedPower = targetSeed.TotalSeedPower.Sub(oldPower).Add(fs.SeedPower())
		if err := cont.saveFarmerSeed(cc, addr, fs); err != nil {
			return err
		}
		if err := cache.Save(targetSeed); err != nil {
			return err
		}
	}
	return nil
}

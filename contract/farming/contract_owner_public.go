package farming

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/meverselabs/boostfarm/common"
	"github.com/meverselabs/boostfarm/common/amount"
	"github.com/meverselabs/boostfarm/core/types"
)

//////////////////////////////////////////////////
// Public Owner Functions
//////////////////////////////////////////////////

// CreateSeed registers a stakeable seed. The id must not contain the
// farm id separator so farm ids stay parseable.
func (cont *FarmingContract) CreateSeed(cc *types.ContractContext, seedID string, decimals uint8, minDeposit *amount.Amount, slashRateBps uint16, minLockingDuration uint64) error {
	if !cont.isOwner(cc) {
		return errors.WithStack(ErrNotOwner)
	}
	if len(seedID) == 0 || strings.Contains(seedID, FarmIDSeparator) {
		return errors.WithStack(ErrInvalidSeedID)
	}
	if slashRateBps > 10000 {
		return errors.WithStack(ErrInvalidAmount)
	}
	cache := newSeedCache(cc)
	if cache.Has(seedID) {
		return errors.WithStack(ErrExistSeed)
	}

	seed := NewSeed(seedID, decimals)
	if minDeposit != nil {
		seed.MinDeposit = minDeposit.Clone()
	}
	seed.SlashRateBps = slashRateBps
	seed.MinLockingDuration = minLockingDuration
	if err := cache.Save(seed); err != nil {
		return err
	}
	cc.SetContractData([]byte{tagSeedList}, stringListBytes(appendToList(cont.SeedIDs(cc), seedID)))
	return nil
}

// CreateFarm attaches a reward stream to a seed and returns the farm id
func (cont *FarmingContract) CreateFarm(cc *types.ContractContext, seedID string, rewardToken common.Address, dailyReward *amount.Amount, startTime uint64) (string, error) {
	if !cont.isOwner(cc) {
		return "", errors.WithStack(ErrNotOwner)
	}
	if dailyReward == nil || !dailyReward.IsPlus() {
		return "", errors.WithStack(ErrInvalidAmount)
	}
	cache := newSeedCache(cc)
	seed, err := cache.Seed(seedID)
	if err != nil {
		return "", err
	}
	if uint32(len(seed.FarmIDs)) >= cont.Policy(cc).MaxFarmsPerSeed {
		return "", errors.WithStack(ErrExceedFarmCount)
	}
	if startTime == 0 {
		startTime = cc.LastTimestamp()
	}

	farmID := seedID + FarmIDSeparator + strconv.FormatUint(uint64(seed.NextFarmIndex), 10)
	seed.NextFarmIndex++
	seed.FarmIDs = append(seed.FarmIDs, farmID)

	farm := NewFarm(farmID, seedID, rewardToken, dailyReward, startTime)
	farm.LastUpdated = cc.LastTimestamp()
	if err := cont.saveFarm(cc, farm); err != nil {
		return "", err
	}
	if err := cache.Save(seed); err != nil {
		return "", err
	}
	return farmID, nil
}

// CancelFarm removes a farm that never received a reward deposit
func (cont *FarmingContract) CancelFarm(cc *types.ContractContext, farmID string) error {
	if !cont.isOwner(cc) {
		return errors.WithStack(ErrNotOwner)
	}
	farm, err := cont.loadFarm(cc, farmID)
	if err != nil {
		return err
	}
	if farm.Status != FarmStatusCreated || farm.TotalRewardDeposited.IsPlus() {
		return errors.WithStack(ErrInvalidFarmState)
	}
	cache := newSeedCache(cc)
	seed, err := cache.Seed(farm.SeedID)
	if err != nil {
		return err
	}
	seed.FarmIDs = removeFromList(seed.FarmIDs, farmID)
	if err := cache.Save(seed); err != nil {
		return err
	}
	cont.deleteFarm(cc, farmID)
	return nil
}

// DepositReward funds a farm and returns the reward capacity that
// remains to be distributed. The accumulator is advanced first so the
// emission before this call is settled against the old deposit cap.
func (cont *FarmingContract) DepositReward(cc *types.ContractContext, farmID string, am *amount.Amount) (*amount.Amount, error) {
	if !cont.isOwner(cc) {
		return nil, errors.WithStack(ErrNotOwner)
	}
	farm, err := cont.loadFarm(cc, farmID)
	if err != nil {
		return nil, err
	}
	seed, err := newSeedCache(cc).Seed(farm.SeedID)
	if err != nil {
		return nil, err
	}
	if err := farm.Advance(seed.TotalSeedPower, cc.LastTimestamp()); err != nil {
		return nil, err
	}
	remaining, err := farm.AddReward(am)
	if err != nil {
		return nil, err
	}
	if err := cont.saveFarm(cc, farm); err != nil {
		return nil, err
	}
	return remaining, nil
}

// ClearFarm retires an ended farm after the expiry grace has passed and
// every deposited reward has been claimed or reclaimed. The record is
// kept in the cleared state for audit, detached from the seed.
func (cont *FarmingContract) ClearFarm(cc *types.ContractContext, farmID string) error {
	if !cont.isOwner(cc) {
		return errors.WithStack(ErrNotOwner)
	}
	farm, err := cont.loadFarm(cc, farmID)
	if err != nil {
		return err
	}
	if farm.Status != FarmStatusEnded {
		return errors.WithStack(ErrInvalidFarmState)
	}
	if cc.LastTimestamp() < farm.LastUpdated+cont.Policy(cc).FarmExpireGrace {
		return errors.WithStack(ErrNotExpiredFarm)
	}
	if !farm.TotalRewardClaimed.Equal(farm.TotalRewardDeposited) {
		return errors.WithStack(ErrUnclaimedReward)
	}

	cache := newSeedCache(cc)
	seed, err := cache.Seed(farm.SeedID)
	if err != nil {
		return err
	}
	seed.FarmIDs = removeFromList(seed.FarmIDs, farmID)
	if err := cache.Save(seed); err != nil {
		return err
	}
	farm.Status = FarmStatusCleared
	return cont.saveFarm(cc, farm)
}

// WithdrawUndistributed routes the reward that was emitted while the
// seed had no power to the beneficiary through the gateway. The
// reclaimed amount counts as claimed so the farm can still reach the
// cleared state.
func (cont *FarmingContract) WithdrawUndistributed(cc *types.ContractContext, farmID string, beneficiary common.Address) (out *amount.Amount, err error) {
	if !cont.isOwner(cc) {
		return nil, errors.WithStack(ErrNotOwner)
	}
	sn := cc.Snapshot()
	defer func() {
		if err != nil {
			cc.Revert(sn)
		} else {
			cc.Commit(sn)
		}
	}()

	farm, err := cont.loadFarm(cc, farmID)
	if err != nil {
		return nil, err
	}
	seed, err := newSeedCache(cc).Seed(farm.SeedID)
	if err != nil {
		return nil, err
	}
	if err := farm.Advance(seed.TotalSeedPower, cc.LastTimestamp()); err != nil {
		return nil, err
	}
	reclaimed := farm.Undistributed
	if !reclaimed.IsPlus() {
		return amount.NewAmount(0, 0), nil
	}
	farm.Undistributed = amount.NewAmount(0, 0)
	farm.TotalRewardClaimed = farm.TotalRewardClaimed.Add(reclaimed)
	if err := cont.saveFarm(cc, farm); err != nil {
		return nil, err
	}
	if _, err := cc.Exec(cc, cont.TransferGateway(cc), "RequestTransfer", []interface{}{farm.RewardToken, beneficiary, reclaimed}); err != nil {
		return nil, err
	}
	return reclaimed, nil
}

// ModifyBooster registers, replaces or removes the booster entry of a
// seed. An empty affected map removes the entry. Cached farmer ratios
// are refreshed lazily on each farmer's next action, so the change never
// walks every staker.
func (cont *FarmingContract) ModifyBooster(cc *types.ContractContext, boosterID string, affectedSeeds map[string]uint32) error {
	if !cont.isOwner(cc) {
		return errors.WithStack(ErrNotOwner)
	}
	cache := newSeedCache(cc)
	if !cache.Has(boosterID) {
		return errors.WithStack(ErrNotExistSeed)
	}
	if len(affectedSeeds) == 0 {
		cont.deleteBooster(cc, boosterID)
		return nil
	}

	policy := cont.Policy(cc)
	if uint32(len(affectedSeeds)) > policy.MaxAffectedSeedsPerBooster {
		return errors.WithStack(ErrExceedAffectedSeedCount)
	}
	entry := &BoosterEntry{
		BoosterID:     boosterID,
		AffectedSeeds: affectedSeeds,
	}
	var farmCount uint32
	for _, seedID := range entry.SortedAffectedSeeds() {
		if seedID == boosterID {
			return errors.WithStack(ErrSelfBoost)
		}
		if entry.AffectedSeeds[seedID] < 2 {
			return errors.Errorf("booster log base of seed %v must be at least 2", seedID)
		}
		seed, err := cache.Seed(seedID)
		if err != nil {
			return err
		}
		farmCount += uint32(len(seed.FarmIDs))
	}
	if farmCount > policy.MaxAffectedFarmsPerBooster {
		return errors.WithStack(ErrExceedAffectedFarmCount)
	}
	return cont.saveBooster(cc, entry)
}

// WithdrawSlashed drains the slash pot of a seed to the receiver. Seed
// tokens are addressed by seed id, so the gateway resolves the custody.
func (cont *FarmingContract) WithdrawSlashed(cc *types.ContractContext, seedID string, to common.Address) (out *amount.Amount, err error) {
	if !cont.isOwner(cc) {
		return nil, errors.WithStack(ErrNotOwner)
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
		return nil, err
	}
	slashed := seed.SlashedBalance
	if !slashed.IsPlus() {
		return amount.NewAmount(0, 0), nil
	}
	seed.SlashedBalance = amount.NewAmount(0, 0)
	if err := cache.Save(seed); err != nil {
		return nil, err
	}
	if _, err := cc.Exec(cc, cont.TransferGateway(cc), "RequestSeedTransfer", []interface{}{seedID, to, slashed}); err != nil {
		return nil, err
	}
	return slashed, nil
}

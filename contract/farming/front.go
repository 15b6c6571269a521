package farming

import (
	"github.com/meverselabs/boostfarm/common"
	"github.com/meverselabs/boostfarm/common/amount"
	"github.com/meverselabs/boostfarm/core/types"
)

func (cont *FarmingContract) Front() interface{} {
	return &front{
		cont: cont,
	}
}

type front struct {
	cont *FarmingContract
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (f *front) Owner(cc *types.ContractContext) common.Address {
	return f.cont.Owner(cc)
}

func (f *front) TransferGateway(cc *types.ContractContext) common.Address {
	return f.cont.TransferGateway(cc)
}

func (f *front) Policy(cc *types.ContractContext) *FarmingPolicy {
	return f.cont.Policy(cc)
}

func (f *front) SeedIDs(cc *types.ContractContext) []string {
	return f.cont.SeedIDs(cc)
}

func (f *front) SeedCount(cc *types.ContractContext) uint32 {
	return f.cont.SeedCount(cc)
}

func (f *front) SeedInfo(cc *types.ContractContext, seedID string) (*Seed, error) {
	return f.cont.SeedInfo(cc, seedID)
}

func (f *front) FarmInfo(cc *types.ContractContext, farmID string) (*Farm, error) {
	return f.cont.FarmInfo(cc, farmID)
}

func (f *front) FarmIDs(cc *types.ContractContext, seedID string) ([]string, error) {
	return f.cont.FarmIDs(cc, seedID)
}

func (f *front) FarmerSeedInfo(cc *types.ContractContext, addr common.Address, seedID string) (*FarmerSeed, error) {
	return f.cont.FarmerSeedInfo(cc, addr, seedID)
}

func (f *front) RewardBalance(cc *types.ContractContext, addr common.Address, token common.Address) *amount.Amount {
	return f.cont.RewardBalance(cc, addr, token)
}

func (f *front) PendingReward(cc *types.ContractContext, addr common.Address, seedID string) (map[common.Address]*amount.Amount, error) {
	return f.cont.PendingReward(cc, addr, seedID)
}

func (f *front) BoosterIDs(cc *types.ContractContext) []string {
	return f.cont.BoosterIDs(cc)
}

func (f *front) BoosterInfo(cc *types.ContractContext, boosterID string) (*BoosterEntry, error) {
	return f.cont.BoosterInfo(cc, boosterID)
}

func (f *front) SlashedBalance(cc *types.ContractContext, seedID string) (*amount.Amount, error) {
	return f.cont.SlashedBalance(cc, seedID)
}

func (f *front) LostFoundBalance(cc *types.ContractContext, addr common.Address, token common.Address) *amount.Amount {
	return f.cont.LostFoundBalance(cc, addr, token)
}

func (f *front) PendingWithdrawInfo(cc *types.ContractContext, id uint64) (*PendingWithdraw, error) {
	return f.cont.PendingWithdrawInfo(cc, id)
}

//////////////////////////////////////////////////
// Public Owner Functions
//////////////////////////////////////////////////

func (f *front) CreateSeed(cc *types.ContractContext, seedID string, decimals uint8, minDeposit *amount.Amount, slashRateBps uint16, minLockingDuration uint64) error {
	return f.cont.CreateSeed(cc, seedID, decimals, minDeposit, slashRateBps, minLockingDuration)
}

func (f *front) CreateFarm(cc *types.ContractContext, seedID string, rewardToken common.Address, dailyReward *amount.Amount, startTime uint64) (string, error) {
	return f.cont.CreateFarm(cc, seedID, rewardToken, dailyReward, startTime)
}

func (f *front) CancelFarm(cc *types.ContractContext, farmID string) error {
	return f.cont.CancelFarm(cc, farmID)
}

func (f *front) DepositReward(cc *types.ContractContext, farmID string, am *amount.Amount) (*amount.Amount, error) {
	return f.cont.DepositReward(cc, farmID, am)
}

func (f *front) ClearFarm(cc *types.ContractContext, farmID string) error {
	return f.cont.ClearFarm(cc, farmID)
}

func (f *front) WithdrawUndistributed(cc *types.ContractContext, farmID string, beneficiary common.Address) (*amount.Amount, error) {
	return f.cont.WithdrawUndistributed(cc, farmID, beneficiary)
}

func (f *front) ModifyBooster(cc *types.ContractContext, boosterID string, affectedSeeds map[string]uint32) error {
	return f.cont.ModifyBooster(cc, boosterID, affectedSeeds)
}

func (f *front) WithdrawSlashed(cc *types.ContractContext, seedID string, to common.Address) (*amount.Amount, error) {
	return f.cont.WithdrawSlashed(cc, seedID, to)
}

//////////////////////////////////////////////////
// Public Farmer Functions
//////////////////////////////////////////////////

func (f *front) Deposit(cc *types.ContractContext, seedID string, am *amount.Amount, lockDuration uint64) error {
	return f.cont.Deposit(cc, seedID, am, lockDuration)
}

func (f *front) Withdraw(cc *types.ContractContext, seedID string, am *amount.Amount, force bool) (*amount.Amount, *amount.Amount, error) {
	return f.cont.Withdraw(cc, seedID, am, force)
}

func (f *front) Claim(cc *types.ContractContext, seedID string) (map[common.Address]*amount.Amount, error) {
	return f.cont.Claim(cc, seedID)
}

func (f *front) WithdrawReward(cc *types.ContractContext, token common.Address, am *amount.Amount) (uint64, error) {
	return f.cont.WithdrawReward(cc, token, am)
}

func (f *front) ResolveWithdraw(cc *types.ContractContext, id uint64, success bool) error {
	return f.cont.ResolveWithdraw(cc, id, success)
}

func (f *front) WithdrawLostFound(cc *types.ContractContext, token common.Address) (*amount.Amount, error) {
	return f.cont.WithdrawLostFound(cc, token)
}

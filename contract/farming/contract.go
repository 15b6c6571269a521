package farming

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/meverselabs/boostfarm/common"
	"github.com/meverselabs/boostfarm/common/amount"
	"github.com/meverselabs/boostfarm/core/types"
)

// FarmingContract is the staking and reward accounting engine: seeds
// hold stake, farms stream reward over seed power, boosters amplify
// power across seeds. Token custody and request dispatch stay with the
// host; the contract only keeps the books.
type FarmingContract struct {
	addr   common.Address
	master common.Address
}

func (cont *FarmingContract) Name() string {
	return "FarmingContract"
}

func (cont *FarmingContract) Address() common.Address {
	return cont.addr
}

func (cont *FarmingContract) Master() common.Address {
	return cont.master
}

func (cont *FarmingContract) Init(addr common.Address, master common.Address) {
	cont.addr = addr
	cont.master = master
}

func (cont *FarmingContract) OnCreate(cc *types.ContractContext, Args []byte) error {
	data := &FarmingContractConstruction{}
	if _, err := data.ReadFrom(bytes.NewReader(Args)); err != nil {
		return err
	}
	policy := data.Policy
	if policy == nil {
		policy = DefaultPolicy()
	}
	if err := policy.Validate(); err != nil {
		return err
	}

	cc.SetContractData([]byte{tagOwner}, data.Owner[:])
	cc.SetContractData([]byte{tagTransferGateway}, data.TransferGateway[:])
	cont.setPolicy(cc, policy)
	return nil
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (cont *FarmingContract) Owner(cc *types.ContractContext) common.Address {
	bs := cc.ContractData([]byte{tagOwner})
	var owner common.Address
	copy(owner[:], bs)
	return owner
}

func (cont *FarmingContract) TransferGateway(cc *types.ContractContext) common.Address {
	bs := cc.ContractData([]byte{tagTransferGateway})
	var gateway common.Address
	copy(gateway[:], bs)
	return gateway
}

func (cont *FarmingContract) Policy(cc *types.ContractContext) *FarmingPolicy {
	bs := cc.ContractData([]byte{tagPolicy})
	if len(bs) == 0 {
		return DefaultPolicy()
	}
	policy := &FarmingPolicy{}
	if _, err := policy.ReadFrom(bytes.NewReader(bs)); err != nil {
		return DefaultPolicy()
	}
	return policy
}

func (cont *FarmingContract) SeedIDs(cc *types.ContractContext) []string {
	return stringListFromBytes(cc.ContractData([]byte{tagSeedList}))
}

func (cont *FarmingContract) SeedCount(cc *types.ContractContext) uint32 {
	return uint32(len(cont.SeedIDs(cc)))
}

func (cont *FarmingContract) SeedInfo(cc *types.ContractContext, seedID string) (*Seed, error) {
	return newSeedCache(cc).Seed(seedID)
}

func (cont *FarmingContract) FarmInfo(cc *types.ContractContext, farmID string) (*Farm, error) {
	return cont.loadFarm(cc, farmID)
}

func (cont *FarmingContract) FarmIDs(cc *types.ContractContext, seedID string) ([]string, error) {
	seed, err := newSeedCache(cc).Seed(seedID)
	if err != nil {
		return nil, err
	}
	return seed.FarmIDs, nil
}

func (cont *FarmingContract) FarmerSeedInfo(cc *types.ContractContext, addr common.Address, seedID string) (*FarmerSeed, error) {
	fs := cont.farmerSeed(cc, addr, seedID)
	if fs == nil {
		return nil, errors.WithStack(ErrNotStakedSeed)
	}
	return fs, nil
}

func (cont *FarmingContract) RewardBalance(cc *types.ContractContext, addr common.Address, token common.Address) *amount.Amount {
	return cont.rewardBalance(cc, addr, token)
}

func (cont *FarmingContract) BoosterIDs(cc *types.ContractContext) []string {
	return stringListFromBytes(cc.ContractData([]byte{tagBoosterList}))
}

func (cont *FarmingContract) BoosterInfo(cc *types.ContractContext, boosterID string) (*BoosterEntry, error) {
	entry := cont.loadBooster(cc, boosterID)
	if entry == nil {
		return nil, errors.WithStack(ErrNotExistBooster)
	}
	return entry, nil
}

func (cont *FarmingContract) SlashedBalance(cc *types.ContractContext, seedID string) (*amount.Amount, error) {
	seed, err := newSeedCache(cc).Seed(seedID)
	if err != nil {
		return nil, err
	}
	return seed.SlashedBalance, nil
}

func (cont *FarmingContract) LostFoundBalance(cc *types.ContractContext, addr common.Address, token common.Address) *amount.Amount {
	bs := cc.ContractData(makeLostFoundKey(addr, token))
	if len(bs) == 0 {
		return amount.NewAmount(0, 0)
	}
	return amount.NewAmountFromBytes(bs)
}

func (cont *FarmingContract) PendingWithdrawInfo(cc *types.ContractContext, id uint64) (*PendingWithdraw, error) {
	pw := cont.loadPendingWithdraw(cc, id)
	if pw == nil {
		return nil, errors.WithStack(ErrNotExistReceipt)
	}
	return pw, nil
}

// PendingReward settles against a snapshot and reverts, so the caller
// sees the claimable reward by token without any state change.
func (cont *FarmingContract) PendingReward(cc *types.ContractContext, addr common.Address, seedID string) (map[common.Address]*amount.Amount, error) {
	sn := cc.Snapshot()
	cache := newSeedCache(cc)
	seed, err := cache.Seed(seedID)
	if err != nil {
		cc.Revert(sn)
		return nil, err
	}
	_, rewardByToken, err := cont.settle(cc, cache, addr, seed)
	cc.Revert(sn)
	if err != nil {
		return nil, err
	}
	return rewardByToken, nil
}

//////////////////////////////////////////////////
// Private Functions
//////////////////////////////////////////////////

func (cont *FarmingContract) setPolicy(cc *types.ContractContext, policy *FarmingPolicy) {
	var buffer bytes.Buffer
	if _, err := policy.WriteTo(&buffer); err != nil {
		panic(err)
	}
	cc.SetContractData([]byte{tagPolicy}, buffer.Bytes())
}

func (cont *FarmingContract) isOwner(cc *types.ContractContext) bool {
	return cc.From() == cont.Owner(cc) || cc.From() == cont.master
}

func (cont *FarmingContract) loadFarm(cc *types.ContractContext, farmID string) (*Farm, error) {
	bs := cc.ContractData(makeFarmKey(farmID))
	if len(bs) == 0 {
		return nil, errors.WithStack(ErrNotExistFarm)
	}
	farm := &Farm{}
	if _, err := farm.ReadFrom(bytes.NewReader(bs)); err != nil {
		return nil, err
	}
	return farm, nil
}

func (cont *FarmingContract) saveFarm(cc *types.ContractContext, farm *Farm) error {
	var buffer bytes.Buffer
	if _, err := farm.WriteTo(&buffer); err != nil {
		return err
	}
	cc.SetContractData(makeFarmKey(farm.FarmID), buffer.Bytes())
	return nil
}

func (cont *FarmingContract) deleteFarm(cc *types.ContractContext, farmID string) {
	cc.SetContractData(makeFarmKey(farmID), nil)
}

func (cont *FarmingContract) loadBooster(cc *types.ContractContext, boosterID string) *BoosterEntry {
	bs := cc.ContractData(makeBoosterKey(boosterID))
	if len(bs) == 0 {
		return nil
	}
	entry := &BoosterEntry{}
	if _, err := entry.ReadFrom(bytes.NewReader(bs)); err != nil {
		return nil
	}
	return entry
}

func (cont *FarmingContract) saveBooster(cc *types.ContractContext, entry *BoosterEntry) error {
	var buffer bytes.Buffer
	if _, err := entry.WriteTo(&buffer); err != nil {
		return err
	}
	cc.SetContractData(makeBoosterKey(entry.BoosterID), buffer.Bytes())
	cc.SetContractData([]byte{tagBoosterList}, stringListBytes(appendToList(cont.BoosterIDs(cc), entry.BoosterID)))
	return nil
}

func (cont *FarmingContract) deleteBooster(cc *types.ContractContext, boosterID string) {
	cc.SetContractData(makeBoosterKey(boosterID), nil)
	cc.SetContractData([]byte{tagBoosterList}, stringListBytes(removeFromList(cont.BoosterIDs(cc), boosterID)))
}

func (cont *FarmingContract) farmerSeed(cc *types.ContractContext, addr common.Address, seedID string) *FarmerSeed {
	bs := cc.AccountData(addr, makeFarmerSeedKey(seedID))
	if len(bs) == 0 {
		return nil
	}
	fs := &FarmerSeed{}
	if _, err := fs.ReadFrom(bytes.NewReader(bs)); err != nil {
		return nil
	}
	return fs
}

func (cont *FarmingContract) farmerSeedIDs(cc *types.ContractContext, addr common.Address) []string {
	return stringListFromBytes(cc.AccountData(addr, []byte{tagFarmerSeedList}))
}

// saveFarmerSeed persists the record or prunes it when it carries no
// stake anymore
func (cont *FarmingContract) saveFarmerSeed(cc *types.ContractContext, addr common.Address, fs *FarmerSeed) error {
	if fs.IsEmpty() {
		cc.SetAccountData(addr, makeFarmerSeedKey(fs.SeedID), nil)
		cc.SetAccountData(addr, []byte{tagFarmerSeedList}, stringListBytes(removeFromList(cont.farmerSeedIDs(cc, addr), fs.SeedID)))
		return nil
	}
	var buffer bytes.Buffer
	if _, err := fs.WriteTo(&buffer); err != nil {
		return err
	}
	cc.SetAccountData(addr, makeFarmerSeedKey(fs.SeedID), buffer.Bytes())
	cc.SetAccountData(addr, []byte{tagFarmerSeedList}, stringListBytes(appendToList(cont.farmerSeedIDs(cc, addr), fs.SeedID)))
	return nil
}

func (cont *FarmingContract) rewardTokens(cc *types.ContractContext, addr common.Address) []string {
	return stringListFromBytes(cc.AccountData(addr, []byte{tagFarmerTokenList}))
}

func (cont *FarmingContract) rewardBalance(cc *types.ContractContext, addr common.Address, token common.Address) *amount.Amount {
	bs := cc.AccountData(addr, makeFarmerRewardKey(token))
	if len(bs) == 0 {
		return amount.NewAmount(0, 0)
	}
	return amount.NewAmountFromBytes(bs)
}

func (cont *FarmingContract) addFarmerReward(cc *types.ContractContext, addr common.Address, token common.Address, am *amount.Amount) {
	if !am.IsPlus() {
		return
	}
	bal := cont.rewardBalance(cc, addr, token).Add(am)
	cc.SetAccountData(addr, makeFarmerRewardKey(token), bal.Bytes())
	cc.SetAccountData(addr, []byte{tagFarmerTokenList}, stringListBytes(appendToList(cont.rewardTokens(cc, addr), string(token[:]))))
}

func (cont *FarmingContract) subFarmerReward(cc *types.ContractContext, addr common.Address, token common.Address, am *amount.Amount) error {
	bal := cont.rewardBalance(cc, addr, token)
	if bal.Less(am) {
		return errors.WithStack(ErrInsufficientReward)
	}
	bal = bal.Sub(am)
	if bal.IsZero() {
		cc.SetAccountData(addr, makeFarmerRewardKey(token), nil)
		cc.SetAccountData(addr, []byte{tagFarmerTokenList}, stringListBytes(removeFromList(cont.rewardTokens(cc, addr), string(token[:]))))
	} else {
		cc.SetAccountData(addr, makeFarmerRewardKey(token), bal.Bytes())
	}
	return nil
}

// farmerExists reports whether any farmer data remains for the account
func (cont *FarmingContract) farmerExists(cc *types.ContractContext, addr common.Address) bool {
	if len(cont.farmerSeedIDs(cc, addr)) > 0 {
		return true
	}
	return len(cont.rewardTokens(cc, addr)) > 0
}

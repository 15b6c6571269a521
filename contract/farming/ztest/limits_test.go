package test

import (
	"math"

	"github.com/meverselabs/boostfarm/common/amount"
	"github.com/meverselabs/boostfarm/contract/farming"
	"github.com/meverselabs/boostfarm/extern/test/util"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("policy bounds", func() {

	BeforeEach(func() {
		policy := farming.DefaultPolicy()
		policy.MaxFarmsPerSeed = 1
		policy.MaxAffectedSeedsPerBooster = 2
		policy.MaxAffectedFarmsPerBooster = 1
		tc = util.MustNewTestContext(policy)
		cont = tc.Cont
	})

	It("bounds the farms of a seed", func() {
		Expect(cont.CreateSeed(cc(admin), "mev", 18, nil, 0, 0)).To(Succeed())
		_, err := cont.CreateFarm(cc(admin), "mev", rewardToken, amount.NewAmount(1, 0), 0)
		Expect(err).To(Succeed())
		_, err = cont.CreateFarm(cc(admin), "mev", rewardToken, amount.NewAmount(1, 0), 0)
		Expect(err).To(MatchError(farming.ErrExceedFarmCount))
	})

	It("bounds the fan-out of a booster", func() {
		Expect(cont.CreateSeed(cc(admin), "a", 18, nil, 0, 0)).To(Succeed())
		Expect(cont.CreateSeed(cc(admin), "b", 18, nil, 0, 0)).To(Succeed())
		Expect(cont.CreateSeed(cc(admin), "c", 18, nil, 0, 0)).To(Succeed())
		Expect(cont.CreateSeed(cc(admin), "boost", 18, nil, 0, 0)).To(Succeed())

		err := cont.ModifyBooster(cc(admin), "boost", map[string]uint32{"a": 2, "b": 2, "c": 2})
		Expect(err).To(MatchError(farming.ErrExceedAffectedSeedCount))

		_, err = cont.CreateFarm(cc(admin), "a", rewardToken, amount.NewAmount(1, 0), 0)
		Expect(err).To(Succeed())
		_, err = cont.CreateFarm(cc(admin), "b", rewardToken, amount.NewAmount(1, 0), 0)
		Expect(err).To(Succeed())
		err = cont.ModifyBooster(cc(admin), "boost", map[string]uint32{"a": 2, "b": 2})
		Expect(err).To(MatchError(farming.ErrExceedAffectedFarmCount))

		Expect(cont.ModifyBooster(cc(admin), "boost", map[string]uint32{"a": 2})).To(Succeed())

		// an empty map removes the entry
		Expect(cont.ModifyBooster(cc(admin), "boost", nil)).To(Succeed())
		_, err = cont.BoosterInfo(cc(admin), "boost")
		Expect(err).To(MatchError(farming.ErrNotExistBooster))
	})

	It("rejects malformed seed registrations", func() {
		Expect(cont.CreateSeed(cc(admin), "", 18, nil, 0, 0)).To(MatchError(farming.ErrInvalidSeedID))
		Expect(cont.CreateSeed(cc(admin), "a#b", 18, nil, 0, 0)).To(MatchError(farming.ErrInvalidSeedID))
		Expect(cont.CreateSeed(cc(admin), "mev", 18, nil, 0, 0)).To(Succeed())
		Expect(cont.CreateSeed(cc(admin), "mev", 18, nil, 0, 0)).To(MatchError(farming.ErrExistSeed))
		Expect(cont.CreateSeed(cc(admin), "x", 18, nil, 10001, 0)).To(MatchError(farming.ErrInvalidAmount))
	})

	It("enforces the deposit minimum", func() {
		Expect(cont.CreateSeed(cc(admin), "mev", 18, amount.NewAmount(5, 0), 0, 0)).To(Succeed())
		err := cont.Deposit(cc(alice), "mev", amount.NewAmount(4, 0), 0)
		Expect(err).To(MatchError(farming.ErrBelowMinimumDeposit))
		Expect(cont.Deposit(cc(alice), "mev", amount.NewAmount(5, 0), 0)).To(Succeed())
	})

	It("rejects a lock duration that would overflow the clock", func() {
		Expect(cont.CreateSeed(cc(admin), "mev", 18, nil, 1000, 86400)).To(Succeed())

		// a wrapped unlock timestamp would land in the past and mint a
		// fully bonused stake that is already mature
		err := cont.Deposit(cc(alice), "mev", amount.NewAmount(100, 0), math.MaxUint64)
		Expect(err).To(MatchError(farming.ErrInvalidLockDuration))
		_, err = cont.FarmerSeedInfo(cc(alice), alice, "mev")
		Expect(err).To(MatchError(farming.ErrNotStakedSeed))

		// the largest duration that still fits the clock is accepted and
		// the lock is immature like any other
		Expect(cont.Deposit(cc(alice), "mev", amount.NewAmount(100, 0), math.MaxUint64-tc.Now())).To(Succeed())
		fs, err := cont.FarmerSeedInfo(cc(alice), alice, "mev")
		Expect(err).To(Succeed())
		Expect(fs.UnlockTimestamp).To(Equal(uint64(math.MaxUint64)))
		_, _, err = cont.Withdraw(cc(alice), "mev", amount.NewAmount(100, 0), false)
		Expect(err).To(MatchError(farming.ErrLockedBalance))
	})

	It("rejects a lock that would shorten an existing one", func() {
		Expect(cont.CreateSeed(cc(admin), "mev", 18, nil, 0, 86400)).To(Succeed())
		Expect(cont.Deposit(cc(alice), "mev", amount.NewAmount(10, 0), 10*86400)).To(Succeed())
		err := cont.Deposit(cc(alice), "mev", amount.NewAmount(10, 0), 86400)
		Expect(err).To(MatchError(farming.ErrShortenedLock))
		// extending is fine
		Expect(cont.Deposit(cc(alice), "mev", amount.NewAmount(10, 0), 20*86400)).To(Succeed())
	})
})

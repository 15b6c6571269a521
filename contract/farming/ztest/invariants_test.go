package test

import (
	"github.com/meverselabs/boostfarm/common"
	"github.com/meverselabs/boostfarm/common/amount"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("distribution invariants", func() {

	BeforeEach(func() {
		beforeEach()
	})

	It("never pays out more than it distributed, even with awkward numbers", func() {
		Expect(cont.CreateSeed(cc(admin), "mev", 18, nil, 0, 0)).To(Succeed())
		farmID, err := cont.CreateFarm(cc(admin), "mev", rewardToken, amount.MustParseAmount("97.3"), 0)
		Expect(err).To(Succeed())
		_, err = cont.DepositReward(cc(admin), farmID, amount.NewAmount(1000, 0))
		Expect(err).To(Succeed())

		Expect(cont.Deposit(cc(alice), "mev", amount.NewAmount(7, 0), 0)).To(Succeed())
		Expect(cont.Deposit(cc(bob), "mev", amount.NewAmount(11, 0), 0)).To(Succeed())
		tc.Sleep(40000)
		Expect(cont.Deposit(cc(carol), "mev", amount.NewAmount(13, 0), 0)).To(Succeed())
		tc.Sleep(50000)

		total := amount.NewAmount(0, 0)
		for _, farmer := range []common.Address{alice, bob, carol} {
			harvest, err := cont.Claim(cc(farmer), "mev")
			Expect(err).To(Succeed())
			if harvest[rewardToken] != nil {
				total = total.Add(harvest[rewardToken])
			}
		}

		farm, err := cont.FarmInfo(cc(admin), farmID)
		Expect(err).To(Succeed())
		Expect(farm.TotalDistributed.Less(total)).To(BeFalse())
		Expect(farm.TotalRewardDeposited.Less(farm.TotalDistributed)).To(BeFalse())
		Expect(farm.TotalRewardClaimed).To(Equal(total))
	})

	It("keeps the accumulator monotonic while running", func() {
		Expect(cont.CreateSeed(cc(admin), "mev", 18, nil, 0, 0)).To(Succeed())
		farmID, err := cont.CreateFarm(cc(admin), "mev", rewardToken, amount.NewAmount(100, 0), 0)
		Expect(err).To(Succeed())
		_, err = cont.DepositReward(cc(admin), farmID, amount.NewAmount(1000, 0))
		Expect(err).To(Succeed())
		Expect(cont.Deposit(cc(alice), "mev", amount.NewAmount(10, 0), 0)).To(Succeed())

		tc.SleepDays(1)
		_, err = cont.Claim(cc(alice), "mev")
		Expect(err).To(Succeed())
		farm, err := cont.FarmInfo(cc(admin), farmID)
		Expect(err).To(Succeed())
		day1 := farm.RewardPerShare.Clone()

		tc.SleepDays(1)
		_, err = cont.Claim(cc(alice), "mev")
		Expect(err).To(Succeed())
		farm, err = cont.FarmInfo(cc(admin), farmID)
		Expect(err).To(Succeed())
		Expect(day1.Less(farm.RewardPerShare)).To(BeTrue())
	})

	It("reports pending reward without mutating state", func() {
		Expect(cont.CreateSeed(cc(admin), "mev", 18, nil, 0, 0)).To(Succeed())
		farmID, err := cont.CreateFarm(cc(admin), "mev", rewardToken, amount.NewAmount(100, 0), 0)
		Expect(err).To(Succeed())
		_, err = cont.DepositReward(cc(admin), farmID, amount.NewAmount(1000, 0))
		Expect(err).To(Succeed())
		Expect(cont.Deposit(cc(alice), "mev", amount.NewAmount(10, 0), 0)).To(Succeed())

		tc.SleepDays(1)
		pending, err := cont.PendingReward(cc(alice), alice, "mev")
		Expect(err).To(Succeed())

		// the preview must not have harvested anything
		Expect(cont.RewardBalance(cc(alice), alice, rewardToken).IsZero()).To(BeTrue())
		farm, err := cont.FarmInfo(cc(admin), farmID)
		Expect(err).To(Succeed())
		Expect(farm.TotalRewardClaimed.IsZero()).To(BeTrue())

		harvest, err := cont.Claim(cc(alice), "mev")
		Expect(err).To(Succeed())
		Expect(harvest[rewardToken]).To(Equal(pending[rewardToken]))
	})

	It("pays stakers that arrived before the farm was funded", func() {
		Expect(cont.CreateSeed(cc(admin), "mev", 18, nil, 0, 0)).To(Succeed())
		farmID, err := cont.CreateFarm(cc(admin), "mev", rewardToken, amount.NewAmount(100, 0), 0)
		Expect(err).To(Succeed())

		// alice stakes while the farm is still unfunded
		Expect(cont.Deposit(cc(alice), "mev", amount.NewAmount(10, 0), 0)).To(Succeed())
		tc.SleepDays(1)
		_, err = cont.DepositReward(cc(admin), farmID, amount.NewAmount(1000, 0))
		Expect(err).To(Succeed())
		tc.SleepDays(1)

		// the schedule catches up from the start time once funded, and the
		// whole backlog belongs to the only staker
		harvest, err := cont.Claim(cc(alice), "mev")
		Expect(err).To(Succeed())
		Expect(harvest[rewardToken]).To(Equal(amount.NewAmount(200, 0)))
	})

	It("charges accrual at the old weight before a stake change", func() {
		Expect(cont.CreateSeed(cc(admin), "mev", 18, nil, 0, 0)).To(Succeed())
		farmID, err := cont.CreateFarm(cc(admin), "mev", rewardToken, amount.NewAmount(100, 0), 0)
		Expect(err).To(Succeed())
		_, err = cont.DepositReward(cc(admin), farmID, amount.NewAmount(1000, 0))
		Expect(err).To(Succeed())

		Expect(cont.Deposit(cc(alice), "mev", amount.NewAmount(10, 0), 0)).To(Succeed())
		tc.SleepDays(1)
		// the first day belongs to alice alone, whatever bob does now
		Expect(cont.Deposit(cc(bob), "mev", amount.NewAmount(10, 0), 0)).To(Succeed())
		tc.SleepDays(1)

		harvestA, err := cont.Claim(cc(alice), "mev")
		Expect(err).To(Succeed())
		Expect(harvestA[rewardToken]).To(Equal(amount.NewAmount(150, 0)))
		harvestB, err := cont.Claim(cc(bob), "mev")
		Expect(err).To(Succeed())
		Expect(harvestB[rewardToken]).To(Equal(amount.NewAmount(50, 0)))
	})
})

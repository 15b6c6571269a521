package test

import (
	"github.com/meverselabs/boostfarm/common/amount"
	"github.com/meverselabs/boostfarm/contract/farming"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("farm lifecycle", func() {

	BeforeEach(func() {
		beforeEach()
	})

	It("runs from created to cleared", func() {
		Expect(cont.CreateSeed(cc(admin), "mev", 18, nil, 0, 0)).To(Succeed())
		farmID, err := cont.CreateFarm(cc(admin), "mev", rewardToken, amount.NewAmount(100, 0), 0)
		Expect(err).To(Succeed())

		farm, err := cont.FarmInfo(cc(admin), farmID)
		Expect(err).To(Succeed())
		Expect(farm.Status).To(Equal(farming.FarmStatusCreated))

		// the first reward deposit starts the stream and reports the
		// capacity left to distribute
		remain, err := cont.DepositReward(cc(admin), farmID, amount.NewAmount(100, 0))
		Expect(err).To(Succeed())
		Expect(remain).To(Equal(amount.NewAmount(100, 0)))
		farm, err = cont.FarmInfo(cc(admin), farmID)
		Expect(err).To(Succeed())
		Expect(farm.Status).To(Equal(farming.FarmStatusRunning))

		Expect(cont.Deposit(cc(alice), "mev", amount.NewAmount(10, 0), 0)).To(Succeed())

		tc.Sleep(43200)
		harvest, err := cont.Claim(cc(alice), "mev")
		Expect(err).To(Succeed())
		Expect(harvest[rewardToken]).To(Equal(amount.NewAmount(50, 0)))

		tc.Sleep(43200)
		harvest, err = cont.Claim(cc(alice), "mev")
		Expect(err).To(Succeed())
		Expect(harvest[rewardToken]).To(Equal(amount.NewAmount(50, 0)))

		// the deposit is exhausted, the farm has ended
		farm, err = cont.FarmInfo(cc(admin), farmID)
		Expect(err).To(Succeed())
		Expect(farm.Status).To(Equal(farming.FarmStatusEnded))
		Expect(farm.TotalRewardClaimed).To(Equal(farm.TotalRewardDeposited))

		// clearing before the grace has passed is rejected
		Expect(cont.ClearFarm(cc(admin), farmID)).To(MatchError(farming.ErrNotExpiredFarm))

		tc.SleepDays(30)
		Expect(cont.ClearFarm(cc(admin), farmID)).To(Succeed())
		farm, err = cont.FarmInfo(cc(admin), farmID)
		Expect(err).To(Succeed())
		Expect(farm.Status).To(Equal(farming.FarmStatusCleared))

		seed, err := cont.SeedInfo(cc(admin), "mev")
		Expect(err).To(Succeed())
		Expect(seed.FarmIDs).To(BeEmpty())
	})

	It("refuses to clear while reward is unclaimed", func() {
		Expect(cont.CreateSeed(cc(admin), "mev", 18, nil, 0, 0)).To(Succeed())
		farmID, err := cont.CreateFarm(cc(admin), "mev", rewardToken, amount.NewAmount(100, 0), 0)
		Expect(err).To(Succeed())
		_, err = cont.DepositReward(cc(admin), farmID, amount.NewAmount(100, 0))
		Expect(err).To(Succeed())
		Expect(cont.Deposit(cc(alice), "mev", amount.NewAmount(10, 0), 0)).To(Succeed())

		tc.SleepDays(1)
		// advance the farm to its end without harvesting alice
		_, err = cont.PendingReward(cc(alice), alice, "mev")
		Expect(err).To(Succeed())
		Expect(cont.Deposit(cc(bob), "mev", amount.NewAmount(1, 0), 0)).To(Succeed())

		tc.SleepDays(31)
		Expect(cont.ClearFarm(cc(admin), farmID)).To(MatchError(farming.ErrUnclaimedReward))

		_, err = cont.Claim(cc(alice), "mev")
		Expect(err).To(Succeed())
		Expect(cont.ClearFarm(cc(admin), farmID)).To(Succeed())
	})

	It("cancels only an unfunded farm", func() {
		Expect(cont.CreateSeed(cc(admin), "mev", 18, nil, 0, 0)).To(Succeed())
		farmID, err := cont.CreateFarm(cc(admin), "mev", rewardToken, amount.NewAmount(100, 0), 0)
		Expect(err).To(Succeed())

		funded, err := cont.CreateFarm(cc(admin), "mev", rewardToken, amount.NewAmount(100, 0), 0)
		Expect(err).To(Succeed())
		_, err = cont.DepositReward(cc(admin), funded, amount.NewAmount(1, 0))
		Expect(err).To(Succeed())
		Expect(cont.CancelFarm(cc(admin), funded)).To(MatchError(farming.ErrInvalidFarmState))

		Expect(cont.CancelFarm(cc(admin), farmID)).To(Succeed())
		_, err = cont.FarmInfo(cc(admin), farmID)
		Expect(err).To(MatchError(farming.ErrNotExistFarm))

		seed, err := cont.SeedInfo(cc(admin), "mev")
		Expect(err).To(Succeed())
		Expect(seed.FarmIDs).To(Equal([]string{funded}))
	})

	It("routes emission to the undistributed bucket while nobody stakes", func() {
		Expect(cont.CreateSeed(cc(admin), "mev", 18, nil, 0, 0)).To(Succeed())
		farmID, err := cont.CreateFarm(cc(admin), "mev", rewardToken, amount.NewAmount(100, 0), 0)
		Expect(err).To(Succeed())
		_, err = cont.DepositReward(cc(admin), farmID, amount.NewAmount(100, 0))
		Expect(err).To(Succeed())

		tc.SleepDays(1)
		reclaimed, err := cont.WithdrawUndistributed(cc(admin), farmID, admin)
		Expect(err).To(Succeed())
		Expect(reclaimed).To(Equal(amount.NewAmount(100, 0)))

		// the reclaimed emission counts as claimed, so the farm can clear
		farm, err := cont.FarmInfo(cc(admin), farmID)
		Expect(err).To(Succeed())
		Expect(farm.Status).To(Equal(farming.FarmStatusEnded))
		Expect(farm.TotalRewardClaimed).To(Equal(farm.TotalRewardDeposited))
		Expect(farm.Undistributed.IsZero()).To(BeTrue())

		tc.SleepDays(30)
		Expect(cont.ClearFarm(cc(admin), farmID)).To(Succeed())
	})
})

package farming

import (
	"io"

	"github.com/pkg/errors"

	"github.com/meverselabs/boostfarm/common"
	"github.com/meverselabs/boostfarm/common/amount"
	"github.com/meverselabs/boostfarm/common/bin"
	"github.com/meverselabs/boostfarm/common/fixedpoint"
)

// FarmStatus is the lifecycle state of a farm
type FarmStatus uint8

const (
	FarmStatusCreated FarmStatus = 0
	FarmStatusRunning FarmStatus = 1
	FarmStatusEnded   FarmStatus = 2
	FarmStatusCleared FarmStatus = 3
)

// secondsPerDay converts the daily emission rate into per-second terms
const secondsPerDay = 86400

const farmVersion = uint8(1)

// Farm is one reward stream attached to a seed
type Farm struct {
	FarmID      string
	SeedID      string
	RewardToken common.Address
	DailyReward *amount.Amount
	StartTime   uint64
	Status      FarmStatus

	RewardPerShare       *fixedpoint.RPS
	TotalRewardDeposited *amount.Amount
	TotalRewardClaimed   *amount.Amount
	TotalDistributed     *amount.Amount
	Undistributed        *amount.Amount
	LastUpdated          uint64
}

// NewFarm returns a Farm in the created state
func NewFarm(farmID string, seedID string, rewardToken common.Address, dailyReward *amount.Amount, startTime uint64) *Farm {
	return &Farm{
		FarmID:               farmID,
		SeedID:               seedID,
		RewardToken:          rewardToken,
		DailyReward:          dailyReward.Clone(),
		StartTime:            startTime,
		Status:               FarmStatusCreated,
		RewardPerShare:       fixedpoint.Zero(),
		TotalRewardDeposited: amount.NewAmount(0, 0),
		TotalRewardClaimed:   amount.NewAmount(0, 0),
		TotalDistributed:     amount.NewAmount(0, 0),
		Undistributed:        amount.NewAmount(0, 0),
	}
}

// RemainingReward returns the reward that has not been distributed yet
func (f *Farm) RemainingReward() *amount.Amount {
	return f.TotalRewardDeposited.Sub(f.TotalDistributed)
}

// emissionTarget returns the cumulative reward the emission schedule
// wants distributed by now, before the deposit cap
func (f *Farm) emissionTarget(now uint64) *amount.Amount {
	if now <= f.StartTime {
		return amount.NewAmount(0, 0)
	}
	elapsed := now - f.StartTime
	return f.DailyReward.MulC(int64(elapsed)).DivC(secondsPerDay)
}

// Advance moves the reward-per-share accumulator up to now against the
// given distribution denominator. With zero power the emission accrues
// into the undistributed bucket so no reward is ever divided away or
// lost. Calling it twice at the same timestamp is a no-op. An ended
// farm is frozen entirely, which keeps LastUpdated at the ending
// timestamp as the anchor of the clearing grace period.
func (f *Farm) Advance(totalSeedPower *amount.Amount, now uint64) error {
	if f.Status == FarmStatusEnded || f.Status == FarmStatusCleared {
		return nil
	}
	if now <= f.LastUpdated {
		return nil
	}
	f.LastUpdated = now
	if f.Status == FarmStatusCreated && now >= f.StartTime && f.TotalRewardDeposited.IsPlus() {
		f.Status = FarmStatusRunning
	}
	if f.Status != FarmStatusRunning {
		return nil
	}

	emitted := f.emissionTarget(now).Sub(f.TotalDistributed)
	remain := f.RemainingReward()
	if remain.Less(emitted) {
		emitted = remain
	}
	if emitted.IsPlus() {
		if !totalSeedPower.IsPlus() {
			f.Undistributed = f.Undistributed.Add(emitted)
		} else {
			rps, err := f.RewardPerShare.AddShare(emitted, totalSeedPower)
			if err != nil {
				return err
			}
			f.RewardPerShare = rps
		}
		f.TotalDistributed = f.TotalDistributed.Add(emitted)
	}
	if !f.RemainingReward().IsPlus() {
		f.Status = FarmStatusEnded
	}
	return nil
}

// AddReward increases the deposited reward of the farm and returns the
// reward that remains to be distributed after the deposit
func (f *Farm) AddReward(am *amount.Amount) (*amount.Amount, error) {
	if !am.IsPlus() {
		return nil, errors.WithStack(ErrInvalidAmount)
	}
	if f.Status == FarmStatusEnded || f.Status == FarmStatusCleared {
		return nil, errors.WithStack(ErrInvalidFarmState)
	}
	f.TotalRewardDeposited = f.TotalRewardDeposited.Add(am)
	if f.Status == FarmStatusCreated {
		f.Status = FarmStatusRunning
	}
	return f.RemainingReward(), nil
}

func (f *Farm) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Uint8(w, farmVersion); err != nil {
		return sum, err
	}
	if sum, err := sw.String(w, f.FarmID); err != nil {
		return sum, err
	}
	if sum, err := sw.String(w, f.SeedID); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, f.RewardToken); err != nil {
		return sum, err
	}
	if sum, err := sw.Amount(w, f.DailyReward); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint64(w, f.StartTime); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint8(w, uint8(f.Status)); err != nil {
		return sum, err
	}
	if sum, err := sw.BigInt(w, f.RewardPerShare.Int); err != nil {
		return sum, err
	}
	if sum, err := sw.Amount(w, f.TotalRewardDeposited); err != nil {
		return sum, err
	}
	if sum, err := sw.Amount(w, f.TotalRewardClaimed); err != nil {
		return sum, err
	}
	if sum, err := sw.Amount(w, f.TotalDistributed); err != nil {
		return sum, err
	}
	if sum, err := sw.Amount(w, f.Undistributed); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint64(w, f.LastUpdated); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (f *Farm) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	var version uint8
	if sum, err := sr.Uint8(r, &version); err != nil {
		return sum, err
	}
	switch version {
	case 0:
		return f.readV0(r, sr)
	case 1:
		return f.readV1(r, sr)
	default:
		return sr.Sum(), errors.Errorf("unknown farm record version %d", version)
	}
}

func (f *Farm) readV1(r io.Reader, sr *bin.SumReader) (int64, error) {
	if sum, err := sr.String(r, &f.FarmID); err != nil {
		return sum, err
	}
	if sum, err := sr.String(r, &f.SeedID); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &f.RewardToken); err != nil {
		return sum, err
	}
	if sum, err := sr.Amount(r, &f.DailyReward); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint64(r, &f.StartTime); err != nil {
		return sum, err
	}
	var status uint8
	if sum, err := sr.Uint8(r, &status); err != nil {
		return sum, err
	}
	f.Status = FarmStatus(status)
	var bs []byte
	if sum, err := sr.Bytes(r, &bs); err != nil {
		return sum, err
	}
	f.RewardPerShare = fixedpoint.FromBytes(bs)
	if sum, err := sr.Amount(r, &f.TotalRewardDeposited); err != nil {
		return sum, err
	}
	if sum, err := sr.Amount(r, &f.TotalRewardClaimed); err != nil {
		return sum, err
	}
	if sum, err := sr.Amount(r, &f.TotalDistributed); err != nil {
		return sum, err
	}
	if sum, err := sr.Amount(r, &f.Undistributed); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint64(r, &f.LastUpdated); err != nil {
		return sum, err
	}
	return sr.Sum(), nil
}

// readV0 upgrades the shape that tracked no undistributed bucket; the
// distributed ledger of an old farm equals its claimed reward.
func (f *Farm) readV0(r io.Reader, sr *bin.SumReader) (int64, error) {
	if sum, err := sr.String(r, &f.FarmID); err != nil {
		return sum, err
	}
	if sum, err := sr.String(r, &f.SeedID); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &f.RewardToken); err != nil {
		return sum, err
	}
	if sum, err := sr.Amount(r, &f.DailyReward); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint64(r, &f.StartTime); err != nil {
		return sum, err
	}
	var status uint8
	if sum, err := sr.Uint8(r, &status); err != nil {
		return sum, err
	}
	f.Status = FarmStatus(status)
	var bs []byte
	if sum, err := sr.Bytes(r, &bs); err != nil {
		return sum, err
	}
	f.RewardPerShare = fixedpoint.FromBytes(bs)
	if sum, err := sr.Amount(r, &f.TotalRewardDeposited); err != nil {
		return sum, err
	}
	if sum, err := sr.Amount(r, &f.TotalRewardClaimed); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint64(r, &f.LastUpdated); err != nil {
		return sum, err
	}
	f.TotalDistributed = f.TotalRewardClaimed.Clone()
	f.Undistributed = amount.NewAmount(0, 0)
	return sr.Sum(), nil
}

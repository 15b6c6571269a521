package farming

import (
	"bytes"
	"testing"

	"github.com/meverselabs/boostfarm/common"
	"github.com/meverselabs/boostfarm/common/amount"
	"github.com/meverselabs/boostfarm/common/bin"
	"github.com/meverselabs/boostfarm/common/fixedpoint"
)

// records written before slashing existed carry version 0 and must come
// back with the new fields zeroed

func Test_Seed_ReadV0(t *testing.T) {
	var buffer bytes.Buffer
	sw := bin.NewSumWriter()
	if _, err := sw.Uint8(&buffer, 0); err != nil {
		t.Fatal(err)
	}
	sw.String(&buffer, "mev")
	sw.Uint8(&buffer, 18)
	sw.Amount(&buffer, amount.NewAmount(1000, 0))
	sw.Amount(&buffer, amount.NewAmount(1250, 0))
	sw.Uint32(&buffer, 2)
	sw.Uint32(&buffer, 1)
	sw.String(&buffer, "mev#0")

	seed := &Seed{}
	if _, err := seed.ReadFrom(&buffer); err != nil {
		t.Fatal(err)
	}
	if seed.SeedID != "mev" || seed.Decimals != 18 {
		t.Fatalf("identity: %v/%d", seed.SeedID, seed.Decimals)
	}
	if !seed.TotalStakedAmount.Equal(amount.NewAmount(1000, 0)) {
		t.Fatalf("staked: %v", seed.TotalStakedAmount.String())
	}
	if seed.NextFarmIndex != 2 || len(seed.FarmIDs) != 1 || seed.FarmIDs[0] != "mev#0" {
		t.Fatal("farm list")
	}
	if !seed.MinDeposit.IsZero() || !seed.SlashedBalance.IsZero() || seed.SlashRateBps != 0 {
		t.Fatal("upgraded fields must start at zero")
	}

	var out bytes.Buffer
	if _, err := seed.WriteTo(&out); err != nil {
		t.Fatal(err)
	}
	if out.Bytes()[0] != seedVersion {
		t.Fatal("rewrite must carry the current version")
	}
}

func Test_FarmerSeed_ReadV0(t *testing.T) {
	rps, err := fixedpoint.Zero().AddShare(amount.NewAmount(5, 0), amount.NewAmount(2, 0))
	if err != nil {
		t.Fatal(err)
	}

	var buffer bytes.Buffer
	sw := bin.NewSumWriter()
	sw.Uint8(&buffer, 0)
	sw.String(&buffer, "mev")
	sw.Amount(&buffer, amount.NewAmount(7, 0))
	sw.Uint32(&buffer, 1)
	sw.String(&buffer, "mev#0")
	sw.Bytes(&buffer, rps.Int.Bytes())

	fs := &FarmerSeed{}
	if _, err := fs.ReadFrom(&buffer); err != nil {
		t.Fatal(err)
	}
	if fs.SeedID != "mev" || !fs.FreeAmount.Equal(amount.NewAmount(7, 0)) {
		t.Fatal("identity or free balance")
	}
	if !fs.UserRPS["mev#0"].Equal(rps) {
		t.Fatal("accumulator snapshot")
	}
	if !fs.LockedAmount.IsZero() || !fs.XLockedAmount.IsZero() || len(fs.BoostRatios) != 0 {
		t.Fatal("upgraded fields must start at zero")
	}
	if !fs.SeedPower().Equal(amount.NewAmount(7, 0)) {
		t.Fatalf("power: %v", fs.SeedPower().String())
	}
}

func Test_Farm_ReadV0(t *testing.T) {
	var token common.Address
	token[0] = 3

	var buffer bytes.Buffer
	sw := bin.NewSumWriter()
	sw.Uint8(&buffer, 0)
	sw.String(&buffer, "mev#0")
	sw.String(&buffer, "mev")
	sw.Address(&buffer, token)
	sw.Amount(&buffer, amount.NewAmount(100, 0))
	sw.Uint64(&buffer, 1600000000)
	sw.Uint8(&buffer, uint8(FarmStatusRunning))
	sw.Bytes(&buffer, fixedpoint.Zero().Int.Bytes())
	sw.Amount(&buffer, amount.NewAmount(1000, 0))
	sw.Amount(&buffer, amount.NewAmount(40, 0))
	sw.Uint64(&buffer, 1600003600)

	farm := &Farm{}
	if _, err := farm.ReadFrom(&buffer); err != nil {
		t.Fatal(err)
	}
	if farm.FarmID != "mev#0" || farm.SeedID != "mev" || farm.RewardToken != token {
		t.Fatal("identity")
	}
	if !farm.TotalDistributed.Equal(farm.TotalRewardClaimed) {
		t.Fatal("old farms count claims as the distributed ledger")
	}
	if !farm.Undistributed.IsZero() {
		t.Fatal("undistributed bucket must start at zero")
	}
	if !farm.RemainingReward().Equal(amount.NewAmount(960, 0)) {
		t.Fatalf("remaining: %v", farm.RemainingReward().String())
	}
}

func Test_BoostRatio(t *testing.T) {
	// log2(10) = 3.3219...; floored to basis points
	if bps := BoostRatio(amount.NewAmount(10, 0), 18, 2); bps != 33219 {
		t.Fatalf("log2(10): %d", bps)
	}
	// a single whole token or less contributes nothing
	if bps := BoostRatio(amount.NewAmount(1, 0), 18, 2); bps != 0 {
		t.Fatalf("one token: %d", bps)
	}
	if bps := BoostRatio(amount.MustParseAmount("0.5"), 18, 2); bps != 0 {
		t.Fatalf("half token: %d", bps)
	}
	// a log base under 2 is not a curve
	if bps := BoostRatio(amount.NewAmount(10, 0), 18, 1); bps != 0 {
		t.Fatalf("base 1: %d", bps)
	}
	// decimals scale the unit, not the raw integer
	if bps := BoostRatio(amount.NewAmount(0, 10), 0, 2); bps != 33219 {
		t.Fatalf("zero decimal token: %d", bps)
	}
	if BoostRatio(nil, 18, 2) != 0 {
		t.Fatal("nil balance")
	}
}

package farming

import (
	"bytes"
	"testing"
)

func Test_Policy_LoadString(t *testing.T) {
	p, err := LoadPolicyString(`
max_farms_per_seed = 4
farm_expire_grace = 86400

[[lock_bonus_tiers]]
min_duration = 604800
bonus_bps = 1000

[[lock_bonus_tiers]]
min_duration = 2592000
bonus_bps = 3000
`)
	if err != nil {
		t.Fatal(err)
	}
	if p.MaxFarmsPerSeed != 4 {
		t.Fatalf("max farms: %d", p.MaxFarmsPerSeed)
	}
	if p.FarmExpireGrace != 86400 {
		t.Fatalf("grace: %d", p.FarmExpireGrace)
	}
	// unset bounds keep the defaults
	if p.MaxAffectedSeedsPerBooster != DefaultPolicy().MaxAffectedSeedsPerBooster {
		t.Fatalf("affected seeds: %d", p.MaxAffectedSeedsPerBooster)
	}
	if bps := p.LockBonusBps(604800); bps != 1000 {
		t.Fatalf("week bonus: %d", bps)
	}
	if bps := p.LockBonusBps(2592000 * 2); bps != 3000 {
		t.Fatalf("two month bonus: %d", bps)
	}
	if bps := p.LockBonusBps(1); bps != 0 {
		t.Fatalf("short lock bonus: %d", bps)
	}
}

func Test_Policy_Validate(t *testing.T) {
	p := DefaultPolicy()
	if err := p.Validate(); err != nil {
		t.Fatal(err)
	}

	p = DefaultPolicy()
	p.MaxFarmsPerSeed = 0
	if err := p.Validate(); err == nil {
		t.Fatal("zero farm bound must be rejected")
	}

	// a longer lock paying less than a shorter one is a misconfiguration
	p = DefaultPolicy()
	p.LockBonusTiers = []LockBonusTier{
		{MinDuration: 100, BonusBps: 5000},
		{MinDuration: 200, BonusBps: 1000},
	}
	if err := p.Validate(); err == nil {
		t.Fatal("non-monotonic bonus table must be rejected")
	}

	p = DefaultPolicy()
	p.LockBonusTiers = []LockBonusTier{
		{MinDuration: 200, BonusBps: 1000},
		{MinDuration: 100, BonusBps: 5000},
	}
	if err := p.Validate(); err == nil {
		t.Fatal("unordered bonus table must be rejected")
	}
}

func Test_Policy_Serialize(t *testing.T) {
	p := DefaultPolicy()
	var buffer bytes.Buffer
	if _, err := p.WriteTo(&buffer); err != nil {
		t.Fatal(err)
	}
	loaded := &FarmingPolicy{}
	if _, err := loaded.ReadFrom(&buffer); err != nil {
		t.Fatal(err)
	}
	if loaded.MaxFarmsPerSeed != p.MaxFarmsPerSeed || len(loaded.LockBonusTiers) != len(p.LockBonusTiers) {
		t.Fatal("serialize roundtrip lost fields")
	}
	if loaded.LockBonusTiers[2] != p.LockBonusTiers[2] {
		t.Fatal("serialize roundtrip lost tier")
	}
}

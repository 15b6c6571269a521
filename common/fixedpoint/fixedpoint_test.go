package fixedpoint

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/meverselabs/boostfarm/common/amount"
)

func Test_AddShare_MulFloor(t *testing.T) {
	reward := amount.NewAmount(100, 0)
	power := amount.NewAmount(40, 0)

	rps, err := Zero().AddShare(reward, power)
	if err != nil {
		t.Fatal(err)
	}
	ten := amount.NewAmount(10, 0)
	if out := rps.MulFloor(ten); out.String() != "25" {
		t.Fatalf("share of 10/40: %v", out.String())
	}
	thirty := amount.NewAmount(30, 0)
	if out := rps.MulFloor(thirty); out.String() != "75" {
		t.Fatalf("share of 30/40: %v", out.String())
	}
}

func Test_AddShare_ZeroPower(t *testing.T) {
	_, err := Zero().AddShare(amount.NewAmount(1, 0), amount.NewAmount(0, 0))
	if errors.Cause(err) != ErrZeroDivisor {
		t.Fatalf("expected zero divisor, got %v", err)
	}
}

func Test_Sub_NeverNegative(t *testing.T) {
	a, err := Zero().AddShare(amount.NewAmount(1, 0), amount.NewAmount(3, 0))
	if err != nil {
		t.Fatal(err)
	}
	b := a.Add(a)
	if _, err := a.Sub(b); errors.Cause(err) != ErrNegativeResult {
		t.Fatalf("expected negative result error, got %v", err)
	}
	diff, err := b.Sub(a)
	if err != nil {
		t.Fatal(err)
	}
	if !diff.Equal(a) {
		t.Fatalf("2a - a != a: %v", diff.String())
	}
}

// the sum of floored shares never exceeds the distributed reward
func Test_FloorConservation(t *testing.T) {
	reward := amount.NewAmount(0, 1)
	power := amount.NewAmount(7, 0)
	rps, err := Zero().AddShare(reward, power)
	if err != nil {
		t.Fatal(err)
	}
	total := amount.NewAmount(0, 0)
	for i := 0; i < 7; i++ {
		total = total.Add(rps.MulFloor(amount.NewAmount(1, 0)))
	}
	if reward.Less(total) {
		t.Fatalf("claims %v exceed reward %v", total.String(), reward.String())
	}
}

func Test_Bytes_Clone(t *testing.T) {
	a, err := Zero().AddShare(amount.NewAmount(123, 456), amount.NewAmount(7, 89))
	if err != nil {
		t.Fatal(err)
	}
	if !FromBytes(a.Int.Bytes()).Equal(a) {
		t.Fatal("bytes roundtrip")
	}
	c := a.Clone()
	if !c.Equal(a) || c.Int == a.Int {
		t.Fatal("clone must be an equal independent value")
	}
}

package fixedpoint

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"

	"github.com/meverselabs/boostfarm/common/amount"
)

// FractionalCount represent the number of decimal digits under the point
const FractionalCount = 24

// fixedpoint errors
var (
	ErrNegativeResult = errors.New("negative fixedpoint result")
	ErrZeroDivisor    = errors.New("zero fixedpoint divisor")
)

var scaleInt = func() *big.Int {
	v := big.NewInt(10)
	return v.Exp(v, big.NewInt(FractionalCount), nil)
}()

var zeroInt = big.NewInt(0)

// RPS is a non-negative fixed point value with 24 fractional digits
// based on the big.Int. It is used as the reward-per-share accumulator
// so that repeated reward/power divisions never lose more than one
// integer unit per settlement.
type RPS struct {
	*big.Int
}

func newRPS() *RPS {
	return &RPS{
		Int: big.NewInt(0),
	}
}

// Zero returns the zero accumulator
func Zero() *RPS {
	return newRPS()
}

// FromBytes parse the accumulator from the byte array
func FromBytes(bs []byte) *RPS {
	p := newRPS()
	p.Int.SetBytes(bs)
	return p
}

// Clone returns the cloned value of it
func (p *RPS) Clone() *RPS {
	c := newRPS()
	c.Int.Set(p.Int)
	return c
}

// Add returns a + b (*immutable)
func (p *RPS) Add(b *RPS) *RPS {
	c := newRPS()
	c.Int.Add(p.Int, b.Int)
	return c
}

// Sub returns a - b (*immutable). A negative result means the
// accumulator monotonicity is broken somewhere upstream, so it is
// returned as an error and never clamped.
func (p *RPS) Sub(b *RPS) (*RPS, error) {
	if p.Int.Cmp(b.Int) < 0 {
		return nil, errors.WithStack(ErrNegativeResult)
	}
	c := newRPS()
	c.Int.Sub(p.Int, b.Int)
	return c, nil
}

// AddShare returns a + reward/power (*immutable), truncating toward zero
func (p *RPS) AddShare(reward *amount.Amount, power *amount.Amount) (*RPS, error) {
	if !power.IsPlus() {
		return nil, errors.WithStack(ErrZeroDivisor)
	}
	c := newRPS()
	c.Int.Mul(reward.Int, scaleInt)
	c.Int.Div(c.Int, power.Int)
	c.Int.Add(c.Int, p.Int)
	return c, nil
}

// MulFloor returns a * power truncated toward zero. The truncation
// direction is what keeps the sum of all claims within the deposited
// reward of a farm.
func (p *RPS) MulFloor(power *amount.Amount) *amount.Amount {
	c := big.NewInt(0)
	c.Mul(p.Int, power.Int)
	c.Div(c, scaleInt)
	return &amount.Amount{Int: c}
}

// IsZero returns a == 0
func (p *RPS) IsZero() bool {
	return p.Int.Cmp(zeroInt) == 0
}

// Equal checks that two values is same or not
func (p *RPS) Equal(b *RPS) bool {
	return p.Int.Cmp(b.Int) == 0
}

// Less returns a < b
func (p *RPS) Less(b *RPS) bool {
	return p.Int.Cmp(b.Int) < 0
}

// String returns the decimal string of the accumulator
func (p *RPS) String() string {
	if p.IsZero() {
		return "0"
	}
	str := p.Int.String()
	if len(str) <= FractionalCount {
		pads := strings.Repeat("0", FractionalCount-len(str))
		sf := strings.TrimRight(pads+str, "0")
		return "0." + sf
	}
	si := str[:len(str)-FractionalCount]
	sf := strings.TrimRight(str[len(str)-FractionalCount:], "0")
	if len(sf) > 0 {
		return si + "." + sf
	}
	return si
}

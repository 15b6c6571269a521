package farming

import "errors"

// farming errors
var (
	// not found
	ErrNotExistSeed    = errors.New("not exist seed")
	ErrNotExistFarm    = errors.New("not exist farm")
	ErrNotExistBooster = errors.New("not exist booster")
	ErrNotExistReceipt = errors.New("not exist withdraw receipt")
	ErrNotStakedSeed   = errors.New("not staked seed")

	// already exists
	ErrExistSeed = errors.New("exist seed")

	// invalid state
	ErrInvalidFarmState = errors.New("invalid farm state")
	ErrLockedBalance    = errors.New("balance is locked until unlock timestamp")
	ErrNotExpiredFarm   = errors.New("farm expire grace is not over")
	ErrUnclaimedReward  = errors.New("farm reward is not fully claimed")

	// insufficient balance
	ErrInsufficientBalance       = errors.New("insufficient balance")
	ErrInsufficientLockedBalance = errors.New("insufficient locked balance")
	ErrInsufficientReward        = errors.New("insufficient reward balance")

	// limit exceeded
	ErrExceedFarmCount         = errors.New("exceed farm count of the seed")
	ErrExceedAffectedSeedCount = errors.New("exceed affected seed count of the booster")
	ErrExceedAffectedFarmCount = errors.New("exceed affected farm count of the booster")

	// invalid parameter
	ErrInvalidSeedID       = errors.New("invalid seed id")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrBelowMinimumDeposit = errors.New("below minimum deposit")
	ErrShortLockDuration   = errors.New("lock duration is shorter than the seed minimum")
	ErrInvalidLockDuration = errors.New("lock duration overflows the unlock timestamp")
	ErrShortenedLock       = errors.New("lock cannot be shortened")
	ErrSelfBoost           = errors.New("booster cannot affect itself")
	ErrUnnecessaryForce    = errors.New("force is not necessary")

	// permission
	ErrNotOwner   = errors.New("not farming owner")
	ErrNotGateway = errors.New("not transfer gateway")
)

package farming

import (
	"bytes"

	"github.com/bluele/gcache"
	"github.com/pkg/errors"

	"github.com/meverselabs/boostfarm/core/types"
)

const seedCacheSize = 64

// seedCache is the read-through cache over seed records, scoped to a
// single request. Every save overwrites the cached entry so the cache
// can never serve a stale record within the request, and the cache is
// discarded with the call frame so it never outlives one.
type seedCache struct {
	cc  *types.ContractContext
	lru gcache.Cache
}

func newSeedCache(cc *types.ContractContext) *seedCache {
	return &seedCache{
		cc:  cc,
		lru: gcache.New(seedCacheSize).LRU().Build(),
	}
}

// Seed returns the seed of the id, ErrNotExistSeed when missing
func (sc *seedCache) Seed(seedID string) (*Seed, error) {
	if v, err := sc.lru.Get(seedID); err == nil {
		return v.(*Seed), nil
	}
	bs := sc.cc.ContractData(makeSeedKey(seedID))
	if len(bs) == 0 {
		return nil, errors.WithStack(ErrNotExistSeed)
	}
	seed := &Seed{}
	if _, err := seed.ReadFrom(bytes.NewReader(bs)); err != nil {
		return nil, err
	}
	if err := sc.lru.Set(seedID, seed); err != nil {
		return nil, errors.WithStack(err)
	}
	return seed, nil
}

// Has reports whether the seed exists without decoding it
func (sc *seedCache) Has(seedID string) bool {
	if sc.lru.Has(seedID) {
		return true
	}
	return len(sc.cc.ContractData(makeSeedKey(seedID))) > 0
}

// Save persists the seed and overwrites the cached entry
func (sc *seedCache) Save(seed *Seed) error {
	var buffer bytes.Buffer
	if _, err := seed.WriteTo(&buffer); err != nil {
		return err
	}
	sc.cc.SetContractData(makeSeedKey(seed.SeedID), buffer.Bytes())
	if err := sc.lru.Set(seed.SeedID, seed); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

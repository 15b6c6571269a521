package farming

import (
	"bytes"

	"github.com/meverselabs/boostfarm/common"
	"github.com/meverselabs/boostfarm/common/bin"
)

var (
	tagOwner           = byte(0x01)
	tagTransferGateway = byte(0x02)
	tagPolicy          = byte(0x03)

	tagSeed        = byte(0x10)
	tagSeedList    = byte(0x11)
	tagFarm        = byte(0x12)
	tagBooster     = byte(0x13)
	tagBoosterList = byte(0x14)

	tagPendingWithdraw = byte(0x15)
	tagWithdrawSeq     = byte(0x16)
	tagLostFound       = byte(0x17)

	tagFarmerSeed      = byte(0x20)
	tagFarmerSeedList  = byte(0x21)
	tagFarmerReward    = byte(0x22)
	tagFarmerTokenList = byte(0x23)
)

// FarmIDSeparator joins a seed id and a farm index into a farm id
const FarmIDSeparator = "#"

func makeFarmingKey(key byte, body []byte) []byte {
	bs := make([]byte, 1+len(body))
	bs[0] = key
	copy(bs[1:], body[:])
	return bs
}

func makeSeedKey(seedID string) []byte {
	return makeFarmingKey(tagSeed, []byte(seedID))
}

func makeFarmKey(farmID string) []byte {
	return makeFarmingKey(tagFarm, []byte(farmID))
}

func makeBoosterKey(boosterID string) []byte {
	return makeFarmingKey(tagBooster, []byte(boosterID))
}

func makePendingWithdrawKey(id uint64) []byte {
	return makeFarmingKey(tagPendingWithdraw, bin.Uint64Bytes(id))
}

func makeLostFoundKey(addr common.Address, token common.Address) []byte {
	bs := append(addr[:], token[:]...)
	return makeFarmingKey(tagLostFound, bs)
}

func makeFarmerSeedKey(seedID string) []byte {
	return makeFarmingKey(tagFarmerSeed, []byte(seedID))
}

func makeFarmerRewardKey(token common.Address) []byte {
	return makeFarmingKey(tagFarmerReward, token[:])
}

func stringListBytes(list []string) []byte {
	if len(list) == 0 {
		return nil
	}
	var buffer bytes.Buffer
	if _, err := bin.WriteUint32(&buffer, uint32(len(list))); err != nil {
		panic(err)
	}
	for _, v := range list {
		if _, err := bin.WriteString(&buffer, v); err != nil {
			panic(err)
		}
	}
	return buffer.Bytes()
}

func stringListFromBytes(bs []byte) []string {
	if len(bs) == 0 {
		return nil
	}
	r := bytes.NewReader(bs)
	Len, _, err := bin.ReadUint32(r)
	if err != nil {
		panic(err)
	}
	list := make([]string, 0, Len)
	for i := uint32(0); i < Len; i++ {
		v, _, err := bin.ReadString(r)
		if err != nil {
			panic(err)
		}
		list = append(list, v)
	}
	return list
}

func appendToList(list []string, v string) []string {
	for _, has := range list {
		if has == v {
			return list
		}
	}
	return append(list, v)
}

func removeFromList(list []string, v string) []string {
	for i, has := range list {
		if has == v {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

func hasInList(list []string, v string) bool {
	for _, has := range list {
		if has == v {
			return true
		}
	}
	return false
}

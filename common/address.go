package common

import (
	"bytes"
	"encoding/binary"

	"github.com/mr-tron/base58/base58"
)

// AddressSize is 14 bytes
const AddressSize = 14

// ZeroAddr is the zero value of the Address
var ZeroAddr = Address{}

// Address is the [AddressSize]byte with methods
type Address [AddressSize]byte

// NewAddress returns a Address by the height, the index and the magic
func NewAddress(height uint32, index uint16, magic uint64) Address {
	var addr Address
	binary.BigEndian.PutUint32(addr[:], height)
	binary.BigEndian.PutUint16(addr[4:], index)
	binary.BigEndian.PutUint64(addr[6:], magic)
	return addr
}

// MarshalJSON is a marshaler function
func (addr Address) MarshalJSON() ([]byte, error) {
	return []byte(`"` + addr.String() + `"`), nil
}

// UnmarshalJSON is a unmarshaler function
func (addr *Address) UnmarshalJSON(bs []byte) error {
	if len(bs) < 3 {
		return ErrInvalidAddressFormat
	}
	if bs[0] != '"' || bs[len(bs)-1] != '"' {
		return ErrInvalidAddressFormat
	}
	v, err := ParseAddress(string(bs[1 : len(bs)-1]))
	if err != nil {
		return err
	}
	copy(addr[:], v[:])
	return nil
}

// String returns a base58 value of the address
func (addr Address) String() string {
	var bs []byte
	checksum := addr.Checksum()
	result := bytes.TrimRight(addr[:], string([]byte{0}))
	if len(result) < 7 {
		bs = make([]byte, 7)
		copy(bs[1:], result[:])
	} else {
		bs = make([]byte, 15)
		copy(bs[1:], result[:])
	}
	bs[0] = checksum

	return base58.Encode(bs)
}

// Clone returns the clonend value of it
func (addr Address) Clone() Address {
	var cp Address
	copy(cp[:], addr[:])
	return cp
}

// Checksum returns the checksum byte
func (addr Address) Checksum() byte {
	var cs byte
	for _, c := range addr {
		cs = cs ^ c
	}
	return cs
}

// ParseAddress parse the address from the string
func ParseAddress(str string) (Address, error) {
	bs, err := base58.Decode(str)
	if err != nil {
		return Address{}, err
	}
	if len(bs) != 7 && len(bs) != 15 {
		return Address{}, ErrInvalidAddressFormat
	}
	cs := bs[0]
	var addr Address
	copy(addr[:], bs[1:])
	if cs != addr.Checksum() {
		return Address{}, ErrInvalidAddressCheckSum
	}
	return addr, nil
}

// MustParseAddress panic when error occurred
func MustParseAddress(str string) Address {
	addr, err := ParseAddress(str)
	if err != nil {
		panic(err)
	}
	return addr
}

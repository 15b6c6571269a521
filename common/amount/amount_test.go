package amount

import (
	"testing"
)

func Test_Amount(t *testing.T) {
	a := NewAmount(10, 0)
	b := MustParseAmount("2.5")
	if a.Add(b).String() != "12.5" {
		t.Fatalf("add: %v", a.Add(b).String())
	}
	if a.Sub(b).String() != "7.5" {
		t.Fatalf("sub: %v", a.Sub(b).String())
	}
	if a.MulC(3).String() != "30" {
		t.Fatalf("mulc: %v", a.MulC(3).String())
	}
	if a.DivC(4).String() != "2.5" {
		t.Fatalf("divc: %v", a.DivC(4).String())
	}
	if !a.Sub(a).IsZero() {
		t.Fatal("sub self is not zero")
	}
	if !b.Less(a) {
		t.Fatal("2.5 < 10")
	}
}

func Test_ParseAmount(t *testing.T) {
	c, err := ParseAmount("10000.00121454")
	if err != nil {
		t.Fatal(err)
	}
	if c.String() != "10000.00121454" {
		t.Fatalf("parse roundtrip: %v", c.String())
	}
	if _, err := ParseAmount("1.2.3"); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := ParseAmount("abc"); err == nil {
		t.Fatal("expected parse error")
	}
}

func Test_AmountBytes(t *testing.T) {
	a := MustParseAmount("123456.789")
	b := NewAmountFromBytes(a.Bytes())
	if !a.Equal(b) {
		t.Fatalf("bytes roundtrip: %v != %v", a.String(), b.String())
	}
}

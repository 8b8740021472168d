package bigint

import (
	"testing"

	"github.com/agbru/montcalc/internal/limb"
)

const (
	gtA = "30644e72e131a029b85045b68181585d97816a916871ca8d3c208c16d87cfd47"
	gtB = "20644e72e131a029b85045b68181585d97816a916871ca8d3c208c16d87cfd47"
	gtD = "1000000000000000000000000000000000000000000000000000000000000000"
)

func TestGreaterThanAndSub(t *testing.T) {
	t.Parallel()

	t.Run("8x32", func(t *testing.T) {
		t.Parallel()
		checkGreaterThanAndSub[uint32](t, limb.Shape8x32, limb.U32{})
	})
	t.Run("4x64", func(t *testing.T) {
		t.Parallel()
		checkGreaterThanAndSub[uint64](t, limb.Shape4x64, limb.U64{})
	})
	t.Run("5x51", func(t *testing.T) {
		t.Parallel()
		checkGreaterThanAndSub[uint64](t, limb.Shape5x51, limb.U51{})
	})
}

func checkGreaterThanAndSub[W limb.Word, A limb.Arith[W]](t *testing.T, shape limb.Shape, ar A) {
	t.Helper()
	a := MustFromHex[W](gtA, shape)
	b := MustFromHex[W](gtB, shape)

	if !a.GreaterThan(b) {
		t.Error("GreaterThan(a, b) = false, want true")
	}
	if b.GreaterThan(a) {
		t.Error("GreaterThan(b, a) = true, want false")
	}
	if !a.GreaterThan(a) {
		t.Error("GreaterThan(a, a) = false, want true")
	}
	if a.Less(a) || !b.Less(a) {
		t.Error("Less disagrees with GreaterThan")
	}
	if got := ToHex(Sub(a, b, ar), shape); got != gtD {
		t.Errorf("a - b = %s, want %s", got, gtD)
	}
	if !Sub(a, a, ar).IsZero() {
		t.Error("a - a is not zero")
	}
}

func TestLimbLayout5x51(t *testing.T) {
	t.Parallel()
	want := []uint64{0x8c16d87cfd47, 0x22d0e3951a784, 0x60561765e05aa, 0x14dc2822db40, 0x30644e72e131a}
	got := MustFromHex[uint64](gtA, limb.Shape5x51)
	if !got.Equal(FromLimbs(want...)) {
		t.Errorf("limbs = %#x, want %#x", got.Limbs(), want)
	}
}

func TestLimbLayout8x32(t *testing.T) {
	t.Parallel()
	x := MustFromHex[uint32](gtA, limb.Shape8x32)
	if x.Limb(0) != 0xd87cfd47 || x.Limb(7) != 0x30644e72 {
		t.Errorf("unexpected limb order: %v", x)
	}
	if x.Len() != 8 {
		t.Errorf("Len() = %d, want 8", x.Len())
	}
}

func TestSubWrapsOnBorrow(t *testing.T) {
	t.Parallel()
	one := FromLimbs[uint32](1, 0)
	zero := New[uint32](2)
	got := Sub(zero, one, limb.U32{})
	if got.Limb(0) != ^uint32(0) || got.Limb(1) != ^uint32(0) {
		t.Errorf("0 - 1 = %v, want all ones", got)
	}
}

func TestLimbsIsACopy(t *testing.T) {
	t.Parallel()
	x := FromLimbs[uint64](1, 2, 3)
	l := x.Limbs()
	l[0] = 99
	if x.Limb(0) != 1 {
		t.Error("mutating Limbs() changed the Int")
	}
	if y := x.SetLimb(0, 7); y.Limb(0) != 7 || x.Limb(0) != 1 {
		t.Error("SetLimb must return a modified copy")
	}
}

func TestNewPanicsOnBadWidth(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Error("New(0) did not panic")
		}
	}()
	_ = New[uint64](0)
}

package limb

import (
	"fmt"
	"strings"
)

// Shape describes how a field element is laid out in limbs.
type Shape struct {
	Name  string
	Limbs int
	Bits  uint
}

var (
	// Shape8x32 stores 256 bits in eight 32-bit limbs.
	Shape8x32 = Shape{Name: "8x32", Limbs: 8, Bits: 32}
	// Shape4x64 stores 256 bits in four 64-bit limbs.
	Shape4x64 = Shape{Name: "4x64", Limbs: 4, Bits: 64}
	// Shape5x51 stores 255 bits in five 51-bit limbs.
	Shape5x51 = Shape{Name: "5x51", Limbs: 5, Bits: 51}
)

// Shapes returns every supported layout, narrowest limb first.
func Shapes() []Shape {
	return []Shape{Shape8x32, Shape5x51, Shape4x64}
}

// ParseShape looks up a shape by name ("8x32", "4x64", "5x51").
func ParseShape(name string) (Shape, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range Shapes() {
		if s.Name == name {
			return s, nil
		}
	}
	return Shape{}, fmt.Errorf("unknown limb shape %q (valid: 8x32, 4x64, 5x51)", name)
}

// TotalBits is the width of the value space, i.e. log2(R).
func (s Shape) TotalBits() uint { return uint(s.Limbs) * s.Bits }

// Mask returns the per-limb mask as a uint64.
func (s Shape) Mask() uint64 {
	if s.Bits >= 64 {
		return ^uint64(0)
	}
	return 1<<s.Bits - 1
}

// Narrow reports whether a 64-bit column can absorb several products of
// this shape without overflowing, which the lazy-carry kernels depend on.
func (s Shape) Narrow() bool { return s.Bits <= 52 }

func (s Shape) String() string { return s.Name }

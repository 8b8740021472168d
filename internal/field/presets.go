package field

import (
	"fmt"
	"sort"
	"strings"
)

// Known moduli, as 64-digit big-endian hex.
const (
	BN254Scalar    = "30644e72e131a029b85045b68181585d2833e84879b9709143e1f593f0000001"
	BLS12377Scalar = "12ab655e9a2ca55660b44d1e5c37b00159aa76fed00000010a11800000000001"

	// The moduli below fill their top limb and leave no spare bit, so
	// BH23 and Domb cannot run on them. P256 does not fit 5x51.
	P256       = "ffffffff00000001000000000000000000000000ffffffffffffffffffffffff"
	Curve25519 = "7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffed"
)

// Preset is a named modulus.
type Preset struct {
	Name        string
	Hex         string
	Description string
}

var presets = map[string]Preset{
	"bn254": {
		Name:        "bn254",
		Hex:         BN254Scalar,
		Description: "BN254 (alt_bn128) scalar field",
	},
	"bls12-377": {
		Name:        "bls12-377",
		Hex:         BLS12377Scalar,
		Description: "BLS12-377 scalar field",
	},
	"p256": {
		Name:        "p256",
		Hex:         P256,
		Description: "NIST P-256 base field",
	},
	"curve25519": {
		Name:        "curve25519",
		Hex:         Curve25519,
		Description: "2^255 - 19",
	},
}

// Known returns every preset sorted by name.
func Known() []Preset {
	out := make([]Preset, 0, len(presets))
	for _, p := range presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup finds a preset by name, case-insensitively.
func Lookup(name string) (Preset, error) {
	p, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Preset{}, fmt.Errorf("unknown field %q", name)
	}
	return p, nil
}

//go:build (amd64 || arm64 || ppc64le || s390x || riscv64) && !purego

package limb

// U64 is the 64-bit backend used by the 4x64 shape on this platform.
type U64 = Native64

// Backend64 names the selected 64-bit backend.
const Backend64 = "native64"

package limb

import (
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// VectorLevel is the widest vector extension the CPU reports. It is
// informational only: every kernel in montcalc is written in portable Go.
type VectorLevel int

const (
	VectorNone VectorLevel = iota
	VectorSSE41
	VectorAVX2
	VectorNEON
)

func (l VectorLevel) String() string {
	switch l {
	case VectorNone:
		return "none"
	case VectorSSE41:
		return "SSE4.1"
	case VectorAVX2:
		return "AVX2"
	case VectorNEON:
		return "NEON"
	default:
		return "unknown"
	}
}

// CPUFeatures summarizes what the host offers to limb arithmetic.
type CPUFeatures struct {
	GOARCH      string
	Backend64   string
	SSE41       bool
	AVX2        bool
	BMI2        bool
	ADX         bool
	ASIMD       bool
	VectorLevel VectorLevel
}

// Features inspects the host with golang.org/x/sys/cpu.
func Features() CPUFeatures {
	f := CPUFeatures{
		GOARCH:    runtime.GOARCH,
		Backend64: Backend64,
		SSE41:     cpu.X86.HasSSE41,
		AVX2:      cpu.X86.HasAVX2,
		BMI2:      cpu.X86.HasBMI2,
		ADX:       cpu.X86.HasADX,
		ASIMD:     cpu.ARM64.HasASIMD,
	}
	switch {
	case f.AVX2:
		f.VectorLevel = VectorAVX2
	case f.SSE41:
		f.VectorLevel = VectorSSE41
	case f.ASIMD:
		f.VectorLevel = VectorNEON
	}
	return f
}

func (f CPUFeatures) String() string {
	var flags []string
	add := func(ok bool, name string) {
		if ok {
			flags = append(flags, name)
		}
	}
	add(f.SSE41, "sse4.1")
	add(f.AVX2, "avx2")
	add(f.BMI2, "bmi2")
	add(f.ADX, "adx")
	add(f.ASIMD, "asimd")
	if len(flags) == 0 {
		flags = append(flags, "none")
	}
	return f.GOARCH + " [" + strings.Join(flags, " ") + "] backend=" + f.Backend64
}

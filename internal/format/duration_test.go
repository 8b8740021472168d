package format

import (
	"testing"
	"time"
)

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d    time.Duration
		want string
	}{
		{800 * time.Nanosecond, "0µs"},
		{250 * time.Microsecond, "250µs"},
		{42 * time.Millisecond, "42ms"},
		{1500 * time.Millisecond, "1.5s"},
	}
	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.d); got != tt.want {
			t.Errorf("FormatExecutionDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatPerOp(t *testing.T) {
	t.Parallel()
	// a 1024-step chain
	if got := FormatPerOp(1024*time.Microsecond, 1024); got != "1000.0ns/op" {
		t.Errorf("FormatPerOp = %q", got)
	}
	if got := FormatPerOp(3*time.Millisecond, 16); got != "187500.0ns/op" {
		t.Errorf("FormatPerOp = %q", got)
	}
	if got := FormatPerOp(time.Second, 0); got != "n/a" {
		t.Errorf("FormatPerOp with zero steps = %q", got)
	}
}

func TestFormatNumberString(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"":        "",
		"7":       "7",
		"1024":    "1,024",
		"65536":   "65,536",
		"1048576": "1,048,576",
		"-4096":   "-4,096",
	}
	for in, want := range tests {
		if got := FormatNumberString(in); got != want {
			t.Errorf("FormatNumberString(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    uint64
		want string
	}{
		{0, "0 B"},
		{72, "72 B"},
		{2048, "2.0 KB"},
		{3 << 19, "1.5 MB"},
		{5 << 30, "5.0 GB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.n); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestTruncateHex(t *testing.T) {
	t.Parallel()
	const chain = "288d8f838d8575326389c5fbec8452ba2c451ba01572146001762fd2e41546ea"
	tests := []struct {
		name string
		in   string
		keep int
		want string
	}{
		{"full result", chain, 12, "288d8f838d85…2fd2e41546ea"},
		{"short value", "0a", 12, "0a"},
		{"exactly 2*keep+1", "0123456789abcdefghijklmno", 12, "0123456789abcdefghijklmno"},
		{"keep zero", chain, 0, chain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateHex(tt.in, tt.keep); got != tt.want {
				t.Errorf("TruncateHex = %q, want %q", got, tt.want)
			}
		})
	}
}

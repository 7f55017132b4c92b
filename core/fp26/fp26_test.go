package fp26

import (
	"testing"

	"golang.org/x/image/math/fixed"
)

func TestRoundtripIntegral(t *testing.T) {
	for _, n := range []int{0, 1, 2, 13, 254, -3} {
		f := FromInt(n)
		if f.Float() != float64(n) {
			t.Errorf("expected %d to round-trip, got %g", n, f.Float())
		}
	}
}

func TestRoundtripFractional(t *testing.T) {
	// every multiple of 1/64 is exactly representable
	for _, x := range []float64{11.5, 0.25, 127.015625, -2.5} {
		f := FromFloat(x)
		if f.Float() != x {
			t.Errorf("expected %g to round-trip, got %g", x, f.Float())
		}
	}
}

func TestEncoding(t *testing.T) {
	if FromFloat(11.5) != 736 {
		t.Errorf("expected 11.5 to encode as 736, got %d", FromFloat(11.5))
	}
	if FromInt(1) != 64 {
		t.Errorf("expected 1 to encode as 64, got %d", FromInt(1))
	}
}

func TestTruncation(t *testing.T) {
	// sub-1/64 remainders truncate toward zero
	if FromFloat(1.0001) != 64 {
		t.Errorf("expected 1.0001 to truncate to 64, got %d", FromFloat(1.0001))
	}
	if FromFloat(-1.0001) != -64 {
		t.Errorf("expected -1.0001 to truncate to -64, got %d", FromFloat(-1.0001))
	}
}

func TestFixedInterop(t *testing.T) {
	x := fixed.I(12) + 32 // 12.5
	f := FromFixed(x)
	if f.Float() != 12.5 {
		t.Errorf("expected 12.5 from fixed.Int26_6, got %g", f.Float())
	}
	if f.Fixed() != x {
		t.Errorf("expected fixed value to round-trip")
	}
}

package ops

import "testing"

func TestDecode(t *testing.T) {
	tests := []struct {
		char byte
		op   Op
	}{
		{'+', IncValue},
		{'-', DecValue},
		{'>', IncPtr},
		{'<', DecPtr},
		{'.', Output},
		{',', Input},
		{'[', LoopStart},
		{']', LoopEnd},
	}

	for _, tt := range tests {
		t.Run(string(tt.char), func(t *testing.T) {
			op, ok := Decode(tt.char)
			if !ok {
				t.Fatalf("Expected %c to decode", tt.char)
			}
			if op != tt.op {
				t.Errorf("Expected %v, got %v", tt.op, op)
			}
			if op.Char() != tt.char {
				t.Errorf("Expected round-trip to %c, got %c", tt.char, op.Char())
			}
		})
	}
}

func TestDecodeTotal(t *testing.T) {
	mapped := 0
	for c := 0; c < 256; c++ {
		op, ok := Decode(byte(c))
		if ok {
			mapped++
			continue
		}
		if op != Invalid {
			t.Errorf("Unmapped %q should decode to Invalid, got %v", byte(c), op)
		}
	}
	if mapped != 8 {
		t.Errorf("Expected 8 mapped characters, got %d", mapped)
	}
}

func TestOpString(t *testing.T) {
	if Invalid.String() != "invalid" {
		t.Errorf("Expected 'invalid', got %q", Invalid.String())
	}
	if LoopStart.String() != "loop" || LoopEnd.String() != "end" {
		t.Errorf("Unexpected loop op names: %q %q", LoopStart, LoopEnd)
	}
}

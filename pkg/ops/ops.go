// Package ops defines the eight tape-machine operations and the
// decoding from program characters to operation tags.
package ops

// Op identifies a single tape-machine operation.
type Op int

const (
	Invalid   Op = iota // unrecognized character, never executed
	IncValue            // + increment cell at pointer
	DecValue            // - decrement cell at pointer
	IncPtr              // > move pointer right
	DecPtr              // < move pointer left
	Output              // . emit cell at pointer
	Input               // , read one value into cell at pointer
	LoopStart           // [ enter loop body if cell is nonzero
	LoopEnd             // ] repeat loop body while cell is nonzero
)

// Decode maps one character of program text to its operation.
// It is total: every unmapped character decodes to Invalid and false.
func Decode(c byte) (Op, bool) {
	switch c {
	case '+':
		return IncValue, true
	case '-':
		return DecValue, true
	case '>':
		return IncPtr, true
	case '<':
		return DecPtr, true
	case '.':
		return Output, true
	case ',':
		return Input, true
	case '[':
		return LoopStart, true
	case ']':
		return LoopEnd, true
	default:
		return Invalid, false
	}
}

// Char returns the character form of the op, or 0 for Invalid.
func (op Op) Char() byte {
	switch op {
	case IncValue:
		return '+'
	case DecValue:
		return '-'
	case IncPtr:
		return '>'
	case DecPtr:
		return '<'
	case Output:
		return '.'
	case Input:
		return ','
	case LoopStart:
		return '['
	case LoopEnd:
		return ']'
	default:
		return 0
	}
}

// String returns the op name for trace output.
func (op Op) String() string {
	switch op {
	case IncValue:
		return "inc"
	case DecValue:
		return "dec"
	case IncPtr:
		return "right"
	case DecPtr:
		return "left"
	case Output:
		return "out"
	case Input:
		return "in"
	case LoopStart:
		return "loop"
	case LoopEnd:
		return "end"
	default:
		return "invalid"
	}
}

// Package vm provides the tape-machine execution engine.
// It owns the tape, the instruction history, the loop bookkeeping and
// the skip counter, and executes one decoded operation at a time as
// characters arrive. Loops are handled by replaying the recorded
// history in place from a stack of body-start indices; there is no
// precompiled jump table, so loop bodies may be appended incrementally
// from a live source.
package vm

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/picobf/picobf/pkg/ops"
)

// ErrStepBudget is returned when MaxSteps executed operations are
// exceeded, typically by a loop whose body never zeroes its cell.
var ErrStepBudget = errors.New("step budget exhausted")

// VM is the tape-machine execution engine.
type VM struct {
	// Tape maps cell index to an 8-bit wrapping value. Unset cells
	// read as zero and indices may go negative; nothing is
	// preallocated.
	Tape map[int]byte

	// Ptr is the currently addressed cell index.
	Ptr int

	// Instructions records every accepted character in feed order.
	// Characters that fail to decode are never recorded.
	Instructions []byte

	// IP indexes the instruction currently being executed.
	IP int

	// loops holds the history index of each committed loop start,
	// innermost last.
	loops []int

	// skip counts loop-start nesting inside a body that must not run.
	// While nonzero every operation except [ and ] is a no-op.
	skip int

	// Steps counts executed operations. MaxSteps is the budget
	// (0 = unlimited).
	Steps    int
	MaxSteps int

	// Output receives cells emitted by '.' (default os.Stdout).
	Output io.Writer

	// Input supplies cells read by ',' (default os.Stdin).
	Input io.Reader

	// Log receives per-operation trace records when Debug is set.
	Log   *slog.Logger
	Debug bool
}

// New creates a VM with a fresh session state.
func New() *VM {
	return &VM{
		Tape:   make(map[int]byte),
		IP:     -1,
		Output: os.Stdout,
		Input:  os.Stdin,
	}
}

// Reset discards all session state: tape, history, pointers, loop
// stack and step count. Collaborators, budget and logging are kept.
func (m *VM) Reset() {
	m.Tape = make(map[int]byte)
	m.Ptr = 0
	m.Instructions = nil
	m.IP = -1
	m.loops = m.loops[:0]
	m.skip = 0
	m.Steps = 0
}

// Feed accepts one character of program text. Characters that do not
// decode are discarded silently. Everything else is appended to the
// instruction history and executed, including any loop replay the
// operation triggers; Feed returns only once the transition has run
// to completion. The returned error is host-level only (collaborator
// I/O or step budget), never a program-text failure.
func (m *VM) Feed(c byte) error {
	op, ok := ops.Decode(c)
	if !ok {
		return nil
	}
	m.Instructions = append(m.Instructions, c)
	m.IP = len(m.Instructions) - 1
	return m.exec(op)
}

// FeedString feeds each character of s in order, stopping at the
// first host-level error.
func (m *VM) FeedString(s string) error {
	for i := 0; i < len(s); i++ {
		if err := m.Feed(s[i]); err != nil {
			return err
		}
	}
	return nil
}

// replay re-executes an already recorded character without growing
// the history.
func (m *VM) replay(c byte) error {
	op, ok := ops.Decode(c)
	if !ok {
		return nil
	}
	return m.exec(op)
}

func (m *VM) exec(op ops.Op) error {
	if err := m.consumeStep(); err != nil {
		return err
	}
	if m.Debug && m.Log != nil {
		m.Log.Debug("exec",
			"op", op, "ip", m.IP, "ptr", m.Ptr,
			"cell", m.Tape[m.Ptr], "skip", m.skip)
	}

	switch op {
	case ops.IncValue:
		if m.skip == 0 {
			m.Tape[m.Ptr]++
		}

	case ops.DecValue:
		if m.skip == 0 {
			m.Tape[m.Ptr]--
		}

	case ops.IncPtr:
		if m.skip == 0 {
			m.Ptr++
		}

	case ops.DecPtr:
		if m.skip == 0 {
			m.Ptr--
		}

	case ops.Output:
		if m.skip == 0 {
			if _, err := m.Output.Write([]byte{m.Tape[m.Ptr]}); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
		}

	case ops.Input:
		if m.skip == 0 {
			var buf [1]byte
			if _, err := io.ReadFull(m.Input, buf[:]); err != nil {
				return fmt.Errorf("reading input: %w", err)
			}
			m.Tape[m.Ptr] = buf[0]
		}

	case ops.LoopStart:
		// A loop start either commits to the stack or extends the
		// skip span, never both. A start seen while already skipping
		// must extend the span so the matching end cannot close the
		// outer skip early.
		if m.skip == 0 && m.Tape[m.Ptr] != 0 {
			m.loops = append(m.loops, m.IP)
		} else {
			m.skip++
		}

	case ops.LoopEnd:
		return m.loopEnd()

	case ops.Invalid:
		// dropped before reaching exec
	}
	return nil
}

// loopEnd closes one skip level, or replays the committed loop body
// until the tested cell reaches zero. The body extent is re-derived
// from the loop stack at the moment the closing operation is reached:
// everything from just after the committed start up to, but not
// including, the current position. A loop end replayed inside an
// outer body drives its own repeat cycle recursively before the outer
// walk resumes.
func (m *VM) loopEnd() error {
	if m.skip > 0 {
		m.skip--
		return nil
	}
	if len(m.loops) == 0 {
		// unmatched ']': no start ever committed, ignore
		return nil
	}
	start := m.loops[len(m.loops)-1]
	for m.Tape[m.Ptr] != 0 {
		if err := m.consumeStep(); err != nil {
			return err
		}
		end := m.IP
		for m.IP = start + 1; m.IP < end; m.IP++ {
			if err := m.replay(m.Instructions[m.IP]); err != nil {
				return err
			}
		}
		m.IP = end
	}
	m.loops = m.loops[:len(m.loops)-1]
	return nil
}

func (m *VM) consumeStep() error {
	m.Steps++
	if m.MaxSteps > 0 && m.Steps > m.MaxSteps {
		return fmt.Errorf("%w after %d operations", ErrStepBudget, m.MaxSteps)
	}
	return nil
}

// TapeDump returns the nonzero cells in index order.
func (m *VM) TapeDump() string {
	idx := make([]int, 0, len(m.Tape))
	for i, v := range m.Tape {
		if v != 0 {
			idx = append(idx, i)
		}
	}
	if len(idx) == 0 {
		return "[]"
	}
	sort.Ints(idx)
	s := "[ "
	for _, i := range idx {
		s += fmt.Sprintf("%d:%d ", i, m.Tape[i])
	}
	return s + "]"
}

// StatusString summarizes the engine registers for debug display.
func (m *VM) StatusString() string {
	return fmt.Sprintf("ptr=%d ip=%d loops=%d skip=%d steps=%d",
		m.Ptr, m.IP, len(m.loops), m.skip, m.Steps)
}

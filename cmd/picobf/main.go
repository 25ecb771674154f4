// PicoBf - a tiny Brainfuck virtual machine
// The engine grows its program incrementally, so loops typed across a
// session still replay correctly.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/picobf/picobf/pkg/logs"
	"github.com/picobf/picobf/pkg/parser"
	"github.com/picobf/picobf/pkg/vm"
)

var (
	flagDebug = flag.Bool("debug", false, "Trace every executed operation")
	flagSteps = flag.Int("steps", 0, "Set step budget (0 = unlimited)")
	flagQuiet = flag.Bool("quiet", false, "Quiet mode (no banner)")
	flagList  = flag.Bool("list", false, "Print a structured listing instead of running")
	flagLog   = flag.String("log", "", "Also write log records to this file")
)

// example prints "Hello World!" and exercises nested loops.
const example = "++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]" +
	">>.>---.+++++++..+++.>>.<-.<.+++.------.--------.>>+.>++."

func main() {
	flag.Parse()

	logger, closer, err := logs.New(*flagDebug, *flagLog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if closer != nil {
		defer closer.Close()
	}

	machine := vm.New()
	machine.Log = logger
	machine.Debug = *flagDebug
	machine.MaxSteps = *flagSteps

	args := flag.Args()

	if len(args) > 0 {
		// Run file(s)
		for _, filename := range args {
			if err := runFile(machine, filename); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}
	} else {
		// Interactive REPL
		runREPL(machine)
	}
}

func runFile(machine *vm.VM, filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}

	if *flagList {
		prog, err := parser.Parse(string(data))
		if err != nil {
			return fmt.Errorf("parsing %s: %w", filename, err)
		}
		fmt.Print(prog.Listing())
		return nil
	}

	// Feed the raw bytes. The engine tolerates source the parser
	// would reject, e.g. unbalanced brackets.
	if err := machine.FeedString(string(data)); err != nil {
		return fmt.Errorf("running %s: %w", filename, err)
	}
	fmt.Println()
	return nil
}

func runREPL(machine *vm.VM) {
	if !*flagQuiet {
		printBanner()
	}

	var historyFile string
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".picobf_history")
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      ">>> ",
		HistoryFile: historyFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil { // Ctrl-C or Ctrl-D
			break
		}

		if handled := handleCommand(machine, line); handled {
			continue
		}

		if err := machine.FeedString(line); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		fmt.Println()
		if machine.Debug {
			fmt.Printf("  Tape: %s\n  %s\n", machine.TapeDump(), machine.StatusString())
		}
	}
}

func handleCommand(machine *vm.VM, line string) bool {
	switch strings.TrimSpace(line) {
	case "":
		return true

	case "reset":
		machine.Reset()
		fmt.Println("VM state cleared.")
		return true

	case "example":
		fmt.Printf("%s\n\n", example)
		// The demo runs on its own VM so it cannot disturb the
		// session state.
		demo := vm.New()
		demo.MaxSteps = machine.MaxSteps
		if err := demo.FeedString(example); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		fmt.Println()
		return true

	case "tape":
		fmt.Println(machine.TapeDump())
		return true

	case "status":
		fmt.Println(machine.StatusString())
		return true

	case "debug":
		machine.Debug = !machine.Debug
		fmt.Printf("Debug mode: %v\n", machine.Debug)
		return true

	case "help":
		printHelp()
		return true

	case "quit", "exit":
		fmt.Println("Goodbye!")
		os.Exit(0)
	}

	return false
}

func printBanner() {
	fmt.Print(`PicoBf v0.1.0
  type reset to clear vm state
  type example to see an example
  type help for commands, quit to exit

`)
}

func printHelp() {
	fmt.Print(`Commands:
  reset      Discard tape, history and loop state
  example    Run the built-in example program
  tape       Show nonzero tape cells
  status     Show engine registers
  debug      Toggle per-operation tracing
  help       Show this help
  quit       Exit

Operations:
  +  -       increment / decrement current cell (8-bit wrap)
  >  <       move pointer right / left (tape unbounded both ways)
  .  ,       output / input one character
  [  ]       loop while current cell is nonzero

Anything else on a line is ignored. Loops may span lines: the closing
bracket replays the recorded body when it arrives.
`)
}

package surface

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/go-kit/kit/log"
	"github.com/pkg/errors"
)

const consoleHelp = `Commands:
  add <number>     add a phone number
  remove <number>  remove a phone number
  dial <number>    dial a phone number
  list             show the known phone numbers
  help             show this help
  quit             leave`

// Console is a line oriented front end: one command per line read from in,
// prompts and errors written to out.
type Console struct {
	b   Bindings
	in  io.Reader
	out io.Writer

	// ctx is the logger context
	ctx *log.Context
}

func NewConsole(ctx *log.Context, b Bindings, in io.Reader, out io.Writer) *Console {
	return &Console{b: b, in: in, out: out, ctx: ctx}
}

// Run reads commands until quit or end of input.
func (c *Console) Run() error {
	scanner := bufio.NewScanner(c.in)
	c.prompt()
	for scanner.Scan() {
		if !c.execute(scanner.Text()) {
			return nil
		}
		c.prompt()
	}
	return errors.Wrap(scanner.Err(), "console: failed to read input")
}

func (c *Console) prompt() {
	fmt.Fprint(c.out, "> ")
}

// execute runs one command line and reports whether to keep reading.
func (c *Console) execute(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}

	command, arg := strings.ToLower(fields[0]), strings.Join(fields[1:], " ")
	switch command {
	case "add":
		c.b.Add(arg)
	case "remove":
		c.b.Remove(arg)
	case "dial":
		if err := c.b.Dial(arg); err != nil {
			c.ctx.Log("event", "dial failed", "error", err)
			fmt.Fprintf(c.out, "error: %v\n", err)
		}
	case "list":
		lister, ok := c.b.(Lister)
		if !ok {
			fmt.Fprintln(c.out, "listing numbers is not supported")
			return true
		}
		for _, n := range lister.Numbers() {
			fmt.Fprintln(c.out, n)
		}
	case "help":
		fmt.Fprintln(c.out, consoleHelp)
	case "quit", "exit":
		return false
	default:
		fmt.Fprintf(c.out, "unknown command %q, type help for the list of commands\n", command)
	}
	return true
}

package types

import (
	"io"

	"github.com/go-kit/kit/log"
)

// Environment is what a command runs against.
type Environment struct {
	Settings TelephoneSettings
	Stdin    io.Reader
	Stdout   io.Writer
}

type cmdFunc func(ctx *log.Context, env Environment, c Cmd) error

type Cmd struct {
	Name          string       // human readable string
	FailExitCode  int          // exitCode to use when commands fail
	NeedsSettings bool         // determines if the settings file is read before invoking
	LogToStderr   bool         // keeps log lines off stdout for interactive commands
	Functions     CmdFunctions // functions used by the command
}

type CmdFunctions struct {
	Invoke cmdFunc // associated function
}

func (command Cmd) InitializeFunctions(input CmdFunctions) Cmd {
	command.Functions = input
	return command
}

var (
	CmdDemoTemplate    = Cmd{Name: "Demo", FailExitCode: 3, NeedsSettings: false}
	CmdReplTemplate    = Cmd{Name: "Repl", FailExitCode: 3, NeedsSettings: true, LogToStderr: true}
	CmdServeTemplate   = Cmd{Name: "Serve", FailExitCode: 4, NeedsSettings: true}
	CmdVersionTemplate = Cmd{Name: "Version", FailExitCode: 1, NeedsSettings: false}

	CmdTemplates = map[string]Cmd{
		"demo":    CmdDemoTemplate,
		"repl":    CmdReplTemplate,
		"serve":   CmdServeTemplate,
		"version": CmdVersionTemplate,
	}
)

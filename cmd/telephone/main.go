package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/Ephraimoffordile/Task-8-LearnAble/internal/app"
	commands "github.com/Ephraimoffordile/Task-8-LearnAble/internal/cmds"
	"github.com/Ephraimoffordile/Task-8-LearnAble/internal/constants"
	"github.com/Ephraimoffordile/Task-8-LearnAble/internal/types"
	"github.com/Ephraimoffordile/Task-8-LearnAble/pkg/versionutil"
)

// These fields are populated by govvv at compile-time.
var (
	Version   string
	GitCommit string
	BuildDate string
	GitState  string
)

// Entry point for the telephone
func main() {
	// After starting the program, vars from versionutil.go must be set in order to share those values across the program.
	versionutil.Initialize(Version, GitCommit, BuildDate, GitState)

	// parse command line arguments
	cmd := parseCmd(os.Args)
	app.Run(cmd)
}

// parseCmd looks at os.Args and parses the subcommand. If it is invalid,
// it prints the usage string and an error message and exits with code 2.
func parseCmd(args []string) types.Cmd {
	if len(args) != 2 {
		printUsage(args)
		fmt.Println("Incorrect usage.")
		os.Exit(constants.ExitCode_IncorrectUsage)
	}
	op := args[1]
	cmd, ok := commands.Cmds[op]

	// If no command was found, then exit
	if !ok {
		printUsage(args)
		fmt.Printf("Incorrect command: %q\n", op)
		os.Exit(constants.ExitCode_IncorrectUsage)
	}

	return cmd
}

// printUsage prints the help string and version of the program to stdout with a
// trailing new line.
func printUsage(args []string) {
	printCommandsUsage(args[0], commands.Cmds)
	fmt.Println(versionutil.DetailedVersionString())
}

// printCommandsUsage prints the format needed to launch the executable.
func printCommandsUsage(program string, cmds map[string]types.Cmd) {
	names := make([]string, 0, len(cmds))
	for k := range cmds {
		names = append(names, k)
	}
	sort.Strings(names)

	fmt.Printf("Usage: %s ", program)
	for i, k := range names {
		if i > 0 {
			fmt.Print("|")
		}
		fmt.Print(k)
	}
	fmt.Println()
}

// Package app runs a telephone command the same way for every entry point:
// logger setup, settings, invoke, exit code.
package app

import (
	"io"
	"os"
	"strings"

	"github.com/Ephraimoffordile/Task-8-LearnAble/internal/constants"
	"github.com/Ephraimoffordile/Task-8-LearnAble/internal/settings"
	"github.com/Ephraimoffordile/Task-8-LearnAble/internal/types"
	"github.com/Ephraimoffordile/Task-8-LearnAble/pkg/versionutil"
	"github.com/go-kit/kit/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Run executes cmd and exits the process with its outcome.
func Run(cmd types.Cmd) {
	os.Exit(Execute(cmd, os.Stdin, os.Stdout, os.Stderr))
}

// Execute executes cmd and returns the exit code. Logs go to stdout unless
// the command asks for stderr or settings name a log file.
func Execute(cmd types.Cmd, stdin io.Reader, stdout, stderr io.Writer) int {
	logWriter := stdout
	if cmd.LogToStderr {
		logWriter = stderr
	}
	ctx := newLogContext(logWriter, cmd)

	s := settings.Default()
	if cmd.NeedsSettings {
		var err error
		if s, err = settings.Load(ctx); err != nil {
			ctx.Log("message", "failed to read settings", "error", err)
			return constants.ExitCode_SettingsInvalid
		}
		if s.LogFile != nil {
			ctx.Log("message", "logging to "+s.LogFile.Path)
			ctx = newLogContext(rotatingWriter(*s.LogFile), cmd)
		}
	}

	ctx.Log("event", "start")
	env := types.Environment{Settings: s, Stdin: stdin, Stdout: stdout}
	if err := cmd.Functions.Invoke(ctx, env, cmd); err != nil {
		ctx.Log("event", "failed to handle", "error", err)
		return cmd.FailExitCode
	}
	ctx.Log("event", "end")
	return constants.ExitCode_Okay
}

func newLogContext(w io.Writer, cmd types.Cmd) *log.Context {
	return log.NewContext(log.NewSyncLogger(log.NewLogfmtLogger(w))).
		With("time", log.DefaultTimestamp).
		With("version", versionutil.VersionString()).
		With("operation", strings.ToLower(cmd.Name))
}

func rotatingWriter(cfg types.LogFileConfig) io.Writer {
	return &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}
}

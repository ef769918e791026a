package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ephraimoffordile/Task-8-LearnAble/internal/dialobserver"
	"github.com/Ephraimoffordile/Task-8-LearnAble/internal/sink"
	"github.com/Ephraimoffordile/Task-8-LearnAble/internal/surface"
	"github.com/Ephraimoffordile/Task-8-LearnAble/internal/telephone"
	"github.com/Ephraimoffordile/Task-8-LearnAble/internal/types"
	"github.com/Ephraimoffordile/Task-8-LearnAble/pkg/blobsink"
	"github.com/Ephraimoffordile/Task-8-LearnAble/pkg/versionutil"
	"github.com/go-kit/kit/log"
	"github.com/pkg/errors"
)

const (
	shutdownTimeout = 10 * time.Second
)

var (
	CmdDemo    = types.CmdDemoTemplate.InitializeFunctions(types.CmdFunctions{Invoke: demo})
	CmdRepl    = types.CmdReplTemplate.InitializeFunctions(types.CmdFunctions{Invoke: repl})
	CmdServe   = types.CmdServeTemplate.InitializeFunctions(types.CmdFunctions{Invoke: serve})
	CmdVersion = types.CmdVersionTemplate.InitializeFunctions(types.CmdFunctions{Invoke: version})

	Cmds = map[string]types.Cmd{
		"demo":    CmdDemo,
		"repl":    CmdRepl,
		"serve":   CmdServe,
		"version": CmdVersion,
	}

	// openBlob is replaced in tests.
	openBlob = func(ctx *log.Context, cfg types.BlobOutput) (sink.Sink, error) {
		return blobsink.Open(ctx, cfg)
	}
)

// demo replays the reference session with both loggers writing to the log.
func demo(ctx *log.Context, env types.Environment, c types.Cmd) error {
	tel := telephone.New(ctx)
	out := sink.NewLogSink(ctx)
	operationLogger := dialobserver.NewOperationLogger(out)
	dialingLogger := dialobserver.NewDialingMessageLogger(out)

	if err := tel.AddObserver(operationLogger); err != nil {
		return err
	}
	if err := tel.AddObserver(dialingLogger); err != nil {
		return err
	}

	tel.AddNumber("23470313135")
	tel.AddNumber("1234567890")

	steps := []func() error{
		func() error { return tel.Dial("23470313135") },
		func() error { return tel.Dial("1234567890") },
		func() error { return tel.Dial("9999669988") },
		func() error {
			tel.RemoveNumber("23470313135")
			return tel.Dial("23470313135")
		},
		func() error {
			tel.RemoveObserver(operationLogger)
			return tel.Dial("1234567890")
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return errors.Wrap(err, "demo dial failed")
		}
	}
	return nil
}

func repl(ctx *log.Context, env types.Environment, c types.Cmd) error {
	tel, err := NewTelephone(ctx, env.Settings, sink.NewWriterSink(env.Stdout))
	if err != nil {
		return err
	}

	fmt.Fprintln(env.Stdout, "Telephone ready. Type help for the list of commands.")
	return surface.NewConsole(ctx, surface.NewTelephoneBindings(tel), env.Stdin, env.Stdout).Run()
}

func serve(ctx *log.Context, env types.Environment, c types.Cmd) error {
	output := sink.NewHTMLSink()
	tel, err := NewTelephone(ctx, env.Settings, output)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    env.Settings.ListenAddress,
		Handler: surface.NewServer(ctx, surface.NewTelephoneBindings(tel), output),
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		ctx.Log("event", "listening", "address", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "http server stopped")
	case <-sigCtx.Done():
	}

	ctx.Log("event", "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return errors.Wrap(srv.Shutdown(shutdownCtx), "failed to shut down http server")
}

func version(ctx *log.Context, env types.Environment, c types.Cmd) error {
	_, err := fmt.Fprintln(env.Stdout, versionutil.DetailedVersionString())
	return err
}

// NewTelephone builds a telephone preloaded with the configured numbers and
// observers. Configured numbers are normalized the same way as typed input.
// Observers using the "surface" sink render to surfaceSink.
func NewTelephone(ctx *log.Context, s types.TelephoneSettings, surfaceSink sink.Sink) (*telephone.Telephone, error) {
	tel := telephone.New(ctx)
	for _, configured := range s.Numbers {
		n, ok := types.ParsePhoneNumber(configured.String())
		if !ok {
			ctx.Log("message", "skipping blank configured number")
			continue
		}
		tel.AddNumber(n)
	}

	var blob sink.Sink
	for i, oc := range s.Observers {
		var target sink.Sink
		switch oc.Sink {
		case types.SinkSurface:
			target = surfaceSink
		case types.SinkLog:
			target = sink.NewLogSink(ctx.With("observer", oc.Kind))
		case types.SinkBlob:
			if blob == nil {
				if s.BlobOutput == nil {
					return nil, errors.Errorf("observer %d uses the blob sink but no blob output is configured", i)
				}
				var err error
				if blob, err = openBlob(ctx, *s.BlobOutput); err != nil {
					return nil, errors.Wrap(err, "failed to open blob output")
				}
			}
			target = blob
		default:
			return nil, errors.Errorf("observer %d has unknown sink %q", i, oc.Sink)
		}

		o, err := dialobserver.New(oc.Kind, target)
		if err != nil {
			return nil, errors.Wrapf(err, "observer %d", i)
		}
		if err := tel.AddObserver(o); err != nil {
			return nil, errors.Wrapf(err, "observer %d", i)
		}
	}

	ctx.Log("event", "telephone ready", "numbers", len(tel.Numbers()), "observers", tel.ObserverCount())
	return tel, nil
}

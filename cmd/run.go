package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/ctnotes/cli"
	"github.com/grovetools/ctnotes/internal/app"
	"github.com/grovetools/ctnotes/internal/instance"
	"github.com/grovetools/ctnotes/internal/window"
	"github.com/grovetools/ctnotes/logging"
	"github.com/grovetools/ctnotes/pkg/paths"
	"github.com/grovetools/ctnotes/tui"
	"github.com/grovetools/ctnotes/tui/notes"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type runOptions struct {
	noTUI       bool
	newInstance bool
}

func runNotes(cmd *cobra.Command, args []string, opts runOptions) error {
	logger := cli.GetLogger(cmd, "ctnotes")
	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	useInstance := cfg.InstanceEnabled() && !opts.newInstance
	if useInstance {
		client := instance.NewClient(paths.SocketPath())
		if client.IsRunning(ctx) {
			if err := client.Forward(ctx, args); err != nil {
				return err
			}
			logger.WithField("paths", args).Info("Forwarded to running instance")
			return nil
		}
	}

	application := app.New(app.Options{
		Config:        cfg,
		WindowFactory: window.New,
		Logger:        logger,
		ErrOut:        logging.GetGlobalOutput(),
	})
	defer func() {
		if err := application.Shutdown(); err != nil {
			logger.WithError(err).Warn("Staging teardown incomplete")
		}
	}()
	if err := application.Initialize(); err != nil {
		return err
	}

	var requests <-chan instance.Request
	if useInstance {
		srv, release, err := startInstance(logger)
		if err != nil {
			return err
		}
		defer release()
		requests = srv.Requests()
	}

	if _, err := application.Dispatch(ctx, args); err != nil {
		return err
	}

	if opts.noTUI {
		return runHeadless(ctx, application, requests, logger)
	}
	return runTUI(ctx, application, requests)
}

// startInstance claims the pid file and serves forwarded requests. The
// returned func stops the server and releases the pid file.
func startInstance(logger *logrus.Entry) (*instance.Server, func(), error) {
	pidPath := paths.PidFilePath()
	sockPath := paths.SocketPath()

	if err := instance.Acquire(pidPath); err != nil {
		return nil, nil, err
	}
	srv := instance.NewServer(logger)
	listener, err := srv.Listen(sockPath)
	if err != nil {
		_ = instance.Release(pidPath)
		return nil, nil, err
	}
	go func() {
		if err := srv.Serve(listener); err != nil {
			logger.WithError(err).Error("Instance server stopped")
		}
	}()

	release := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("Instance server shutdown error")
		}
		_ = os.Remove(sockPath)
		if err := instance.Release(pidPath); err != nil {
			logger.WithError(err).Warn("Failed to release pid file")
		}
	}
	return srv, release, nil
}

// runHeadless applies forwarded requests and reports document changes until
// ctx is cancelled.
func runHeadless(ctx context.Context, application *app.Application, requests <-chan instance.Request, logger *logrus.Entry) error {
	pretty := logging.NewPrettyLogger()
	printWindows(pretty, application)

	docEvents := application.DocumentEvents()
	for {
		select {
		case <-ctx.Done():
			logger.Info("Shutting down")
			return nil
		case req, ok := <-requests:
			if !ok {
				requests = nil
				continue
			}
			if _, err := application.HandleRequest(ctx, req); err != nil {
				pretty.ErrorPretty("Request failed", err)
				continue
			}
			printWindows(pretty, application)
		case ev, ok := <-docEvents:
			if !ok {
				docEvents = nil
				continue
			}
			if ev.Removed {
				pretty.WarnPretty("Removed on disk: " + ev.Path)
			} else {
				pretty.InfoPretty("Changed on disk: " + ev.Path)
			}
		}
	}
}

func printWindows(pretty *logging.PrettyLogger, application *app.Application) {
	for i, w := range application.Windows().All() {
		pretty.InfoPretty(fmt.Sprintf("Window %d (%d documents)", i+1, len(w.Documents())))
		for _, doc := range w.Documents() {
			pretty.Path(string(doc.Format), doc.Path)
		}
	}
}

// runTUI runs the terminal UI. Log output is held back while the UI owns
// the terminal and written out afterwards.
func runTUI(ctx context.Context, application *app.Application, requests <-chan instance.Request) error {
	tui.InitializeTUI()

	held := &lockedBuffer{}
	prev := logging.SetGlobalOutput(held)
	defer func() {
		logging.SetGlobalOutput(prev)
		_, _ = held.WriteTo(prev)
	}()

	model := notes.New(ctx, application, requests, application.DocumentEvents())
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}

// lockedBuffer is a bytes.Buffer safe for concurrent writers.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) WriteTo(w io.Writer) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.WriteTo(w)
}

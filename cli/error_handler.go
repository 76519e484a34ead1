package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/grovetools/ctnotes/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
	Out     io.Writer
}

// NewErrorHandler creates a new error handler writing to stderr.
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		Out:     os.Stderr,
	}
}

// Handle prints a message and a hint for err, based on its code, and returns err.
func (h *ErrorHandler) Handle(err error) error {
	if err == nil {
		return nil
	}
	e, _ := errors.As(err)

	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(h.Out, "Error: %v\n", err)
		fmt.Fprintf(h.Out, "Run 'ctnotes config path' to see where ctnotes looks for its configuration.\n")

	case errors.ErrCodeConfigInvalid:
		fmt.Fprintf(h.Out, "Error: %v\n", err)
		if e != nil {
			if field, ok := e.Details["field"]; ok {
				fmt.Fprintf(h.Out, "Check the '%v' setting in your config file.\n", field)
			}
		}
		fmt.Fprintf(h.Out, "Run 'ctnotes config schema' to see the accepted settings.\n")

	case errors.ErrCodeExtractUnavailable:
		fmt.Fprintf(h.Out, "Error: %v\n", err)
		fmt.Fprintf(h.Out, "Set documents.extract_command to open encrypted .ctx/.ctz documents.\n")

	case errors.ErrCodeInstanceRunning:
		fmt.Fprintf(h.Out, "Error: %v\n", err)
		fmt.Fprintf(h.Out, "Your files are forwarded to it; use --new-instance only with instance.enabled=false.\n")

	case errors.ErrCodeInstanceUnreachable:
		fmt.Fprintf(h.Out, "Error: %v\n", err)
		if e != nil {
			fmt.Fprintf(h.Out, "The socket %v may be stale; remove it or start with --new-instance.\n", e.Details["socket"])
		}

	case errors.ErrCodeStagingAlloc:
		fmt.Fprintf(h.Out, "Error: %v\n", err)
		fmt.Fprintf(h.Out, "Check that staging.temp_root exists and is writable.\n")

	default:
		fmt.Fprintf(h.Out, "Error: %v\n", err)
	}

	if h.Verbose && e != nil {
		fmt.Fprintf(h.Out, "\nError details:\n%s\n", e.ToJSON())
	}
	return err
}

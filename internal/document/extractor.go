package document

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/grovetools/ctnotes/command"
	"github.com/grovetools/ctnotes/errors"
	"github.com/sirupsen/logrus"
)

// CommandExtractor unpacks encrypted documents by running an external
// program. Each template argument may use {src}, {dst} and {dir}; the same
// values are exported as CTNOTES_SRC, CTNOTES_DST and CTNOTES_DIR. The rest of
// the environment, including CTNOTES_PASSWORD, is inherited.
type CommandExtractor struct {
	template []string
	timeout  time.Duration
	builder  *command.SafeBuilder
	logger   *logrus.Entry
}

// NewCommandExtractor creates an extractor for the given argv template.
func NewCommandExtractor(template []string, timeout time.Duration, builder *command.SafeBuilder, logger *logrus.Entry) *CommandExtractor {
	if builder == nil {
		builder = command.NewSafeBuilder()
	}
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &CommandExtractor{template: template, timeout: timeout, builder: builder, logger: logger}
}

// Extract runs the template for one document.
func (e *CommandExtractor) Extract(ctx context.Context, src, dst string) error {
	if len(e.template) == 0 {
		return errors.ExtractUnavailable(src)
	}
	for _, p := range []string{src, dst} {
		if err := e.builder.Validate("path", p); err != nil {
			return errors.Wrap(err, errors.ErrCodeInvalidInput, "refusing to pass path to extractor").
				WithDetail("path", p)
		}
	}

	dir := filepath.Dir(dst)
	r := strings.NewReplacer("{src}", src, "{dst}", dst, "{dir}", dir)
	argv := make([]string, len(e.template))
	for i, arg := range e.template {
		argv[i] = r.Replace(arg)
	}

	cmd, err := e.builder.Build(ctx, argv[0], argv[1:]...)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "invalid extract command")
	}
	cmd.WithTimeout(e.timeout).WithEnv(
		"CTNOTES_SRC="+src,
		"CTNOTES_DST="+dst,
		"CTNOTES_DIR="+dir,
	)

	e.logger.WithField("command", cmd.String()).Debug("Running extractor")
	out, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return errors.Wrap(err, errors.ErrCodeLoadFailed, "extractor failed").WithDetail("path", src)
	}
	return nil
}

package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/grovetools/ctnotes/errors"
)

var knownIconSets = map[string]bool{"nerd": true, "ascii": true}

// Validate checks semantic constraints the schema cannot express.
func (c *Config) Validate() error {
	if err := validateStaging(&c.Staging); err != nil {
		return err
	}
	if err := validateDocuments(&c.Documents); err != nil {
		return err
	}
	if c.TUI.Icons != "" && !knownIconSets[c.TUI.Icons] {
		return errors.ConfigInvalid(fmt.Sprintf("tui.icons must be 'nerd' or 'ascii', got '%s'", c.TUI.Icons)).
			WithDetail("field", "tui.icons")
	}
	return nil
}

func validateStaging(s *StagingConfig) error {
	if strings.ContainsAny(s.Prefix, `/\*`) || strings.Contains(s.Prefix, string(filepath.Separator)) {
		return errors.ConfigInvalid(fmt.Sprintf("staging.prefix must be a plain name, got '%s'", s.Prefix)).
			WithDetail("field", "staging.prefix")
	}
	if s.TempRoot != "" && !filepath.IsAbs(s.TempRoot) {
		return errors.ConfigInvalid(fmt.Sprintf("staging.temp_root must be absolute, got '%s'", s.TempRoot)).
			WithDetail("field", "staging.temp_root")
	}
	return nil
}

func validateDocuments(d *DocumentsConfig) error {
	if d.ExtractTimeout != "" {
		timeout, err := time.ParseDuration(d.ExtractTimeout)
		if err != nil || timeout <= 0 {
			return errors.ConfigInvalid(fmt.Sprintf("documents.extract_timeout must be a positive duration, got '%s'", d.ExtractTimeout)).
				WithDetail("field", "documents.extract_timeout")
		}
	}
	if len(d.ExtractCommand) > 0 && strings.TrimSpace(d.ExtractCommand[0]) == "" {
		return errors.ConfigInvalid("documents.extract_command must start with an executable").
			WithDetail("field", "documents.extract_command")
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/redline/internal/core/styles"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("data_dir", c.DataDir, notEmpty),
		criterio.Run("tui.theme", c.TUI.Theme, knownTheme),
		c.validateLimits(),
		c.validateKeys(),
	)
}

func (c *Config) validateLimits() error {
	var errs criterio.FieldErrorsBuilder

	if c.Align.MaxTokens < 0 {
		errs = errs.Append("align.max_tokens", fmt.Errorf("cannot be negative"))
	}
	if c.Align.MemoSize < 1 {
		errs = errs.Append("align.memo_size", fmt.Errorf("must be at least 1"))
	}
	if c.History.MaxEntries < 1 {
		errs = errs.Append("history.max_entries", fmt.Errorf("must be at least 1"))
	}

	return errs.ToError()
}

// ValidateDeep runs Validate and then checks file accessibility.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Align.MaxTokens == 0 {
		warnings = append(warnings, ValidationWarning{
			Category: "Align",
			Item:     "max_tokens",
			Message:  "token cap disabled; very long clauses may be slow to align",
		})
	}

	if c.Align.MaxTokens > 10000 {
		warnings = append(warnings, ValidationWarning{
			Category: "Align",
			Item:     "max_tokens",
			Message:  fmt.Sprintf("cap of %d tokens allows alignments with %d table cells", c.Align.MaxTokens, c.Align.MaxTokens*c.Align.MaxTokens),
		})
	}

	return warnings
}

func (c *Config) validateKeys() error {
	var errs criterio.FieldErrorsBuilder

	for _, k := range c.Keys.Next {
		if slices.Contains(c.Keys.Previous, k) {
			errs = errs.Append("keys", fmt.Errorf("key %q bound to both next and previous", k))
		}
	}
	for i, k := range append(slices.Clone(c.Keys.Next), c.Keys.Previous...) {
		if k == "" {
			errs = errs.Append(fmt.Sprintf("keys[%d]", i), fmt.Errorf("key cannot be empty"))
		}
	}

	return errs.ToError()
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func isDirectoryOrNotExist(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}

func notEmpty(s string) error {
	if s == "" {
		return fmt.Errorf("cannot be empty")
	}
	return nil
}

func knownTheme(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %v)", name, styles.ThemeNames())
	}
	return nil
}

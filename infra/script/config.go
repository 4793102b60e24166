package script

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// Script Config
type Config struct {
	// directory of scene scripts.
	LoadDir string `toml:"load_dir"`
	// script file under LoadDir.
	LoadFile string `toml:"load_file"`

	CallStackSize       int  `toml:"call_stack_size"`
	RegistrySize        int  `toml:"registry_size"`
	IncludeGoStackTrace bool `toml:"include_go_stack_trace"`

	// a script running longer than this is aborted. 0 means DefaultLoadTimeout.
	LoadTimeout time.Duration `toml:"load_timeout"`
	// reload scripts when the file is changed.
	ReloadFileChange bool `toml:"reload_file_change"`
}

var (
	// default paramters for script VM.
	LoadDir            = "script"
	LoadFile           = "scenes.lua"
	CallStackSize      = lua.CallStackSize
	RegistrySize       = lua.RegistrySize
	DefaultLoadTimeout = 5 * time.Second
)

// return new default config.
func NewConfig() Config {
	return Config{
		LoadDir:       LoadDir,
		LoadFile:      LoadFile,
		CallStackSize: CallStackSize,
		RegistrySize:  RegistrySize,
		LoadTimeout:   DefaultLoadTimeout,
	}
}

func (c Config) Validate() error {
	if c.LoadFile == "" {
		return fmt.Errorf("script: load file is empty")
	}
	if c.CallStackSize < 0 || c.RegistrySize < 0 || c.LoadTimeout < 0 {
		return fmt.Errorf("script: negative vm parameter in %+v", c)
	}
	_, err := c.Path()
	return err
}

// Path returns the script file path under LoadDir.
func (c Config) Path() (string, error) {
	p := filepath.Join(c.LoadDir, c.LoadFile)
	if err := validateScriptPath(p, c.LoadDir); err != nil {
		return "", err
	}
	return p, nil
}

func (c Config) loadTimeout() time.Duration {
	if c.LoadTimeout == 0 {
		return DefaultLoadTimeout
	}
	return c.LoadTimeout
}

// validateScriptPath returns error if p is not under baseDir,
// e.g. it includes "../" to escape from baseDir.
func validateScriptPath(p string, baseDir string) error {
	if baseDir == "" {
		baseDir = "."
	}
	rel, err := filepath.Rel(filepath.Clean(baseDir), filepath.Clean(p))
	if err != nil {
		return fmt.Errorf("script: %s is not under %s: %w", p, baseDir, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("script: %s must be under %s", p, baseDir)
	}
	return nil
}

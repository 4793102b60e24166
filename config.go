// Package puzzlescene holds the application level configuration of
// the scene engine and puzzle sessions.
package puzzlescene

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mzki/puzzlescene/filesystem"
	"github.com/mzki/puzzlescene/history"
	"github.com/mzki/puzzlescene/infra/script"
	"github.com/mzki/puzzlescene/infra/serialize/toml"
	"github.com/mzki/puzzlescene/puzzle"
	"github.com/mzki/puzzlescene/resource"
	"github.com/mzki/puzzlescene/scene"
	"github.com/mzki/puzzlescene/state"
	"github.com/mzki/puzzlescene/util/errutil"
	"github.com/mzki/puzzlescene/util/log"
)

const (
	// default configuration file.
	ConfigFile = "puzzlescene.conf"

	// by default, use current dir of running main.
	DefaultBaseDir = "./"

	LogFileStdOut  = "stdout"      // specify log outputs to stdout
	LogFileStdErr  = "stderr"      // specify log outputs to stderr
	DefaultLogFile = LogFileStdErr // default output log file.

	DefaultLogLevel         = "info"
	DefaultLogLimitMegaByte = 10 // 10 * 1000 * 1000 Bytes

	DefaultScriptDir = "script"
)

// Config holds parameters of the whole application.
// To build this, use NewConfig instead of struct constructor, Config{}.
type Config struct {
	LogFile          string `toml:"logfile"`
	LogLevel         string `toml:"loglevel"`
	LogLimitMegaByte int64  `toml:"loglimit_megabytes"`

	Scene    scene.Config    `toml:"scene"`
	History  history.Config  `toml:"history"`
	Script   script.Config   `toml:"script"`
	Resource resource.Config `toml:"resource"`
	Save     state.Config    `toml:"save"`
}

// return default config with the base directory. if baseDir is empty
// use default insteadly.
func NewConfig(baseDir string) *Config {
	if baseDir == "" {
		baseDir = DefaultBaseDir
	}
	scriptConf := script.NewConfig()
	scriptConf.LoadDir = filepath.Join(baseDir, DefaultScriptDir)
	resourceConf := resource.NewConfig()
	resourceConf.Manifest = filepath.Join(baseDir, resource.DefaultManifestFile)
	return &Config{
		LogFile:          DefaultLogFile,
		LogLevel:         DefaultLogLevel,
		LogLimitMegaByte: DefaultLogLimitMegaByte,

		Scene: scene.Config{
			DialogueWidth: scene.DefaultDialogueWidth,
			JumpGravity:   scene.DefaultJumpGravity,
		},
		History:  history.Config{MaxLen: history.DefaultMaxLen},
		Script:   scriptConf,
		Resource: resourceConf,
		Save:     state.Config{SaveFileDir: filepath.Join(baseDir, state.DefaultSaveFileDir)},
	}
}

// Puzzle returns config for puzzle.Session.
func (c *Config) Puzzle() puzzle.Config {
	return puzzle.Config{Scene: c.Scene, History: c.History}
}

// Validate reports all of invalid sections at once.
func (c *Config) Validate() error {
	merr := errutil.NewMultiError()
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		merr.Add(err)
	}
	merr.Add(c.Puzzle().Validate())
	merr.Add(c.Script.Validate())
	merr.Add(c.Resource.Validate())
	return merr.Err()
}

// ErrDefaultConfigGenerated implies that the specified config file is not found,
// and intead of that default config is generated and used.
var ErrDefaultConfigGenerated error = errors.New("default config generated")

// if config file exists load it and return.
// if not exists return default config and write it.
func LoadConfigOrDefault(file string) (*Config, error) {
	if !filesystem.Exist(file) {
		conf := NewConfig(DefaultBaseDir)
		// write default config
		if err := toml.EncodeFile(file, conf); err != nil {
			return nil, err
		}
		return conf, ErrDefaultConfigGenerated
	}

	conf := NewConfig(DefaultBaseDir) // default value will be remain when missing at decoded config.
	if err := toml.DecodeFile(file, conf); err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return conf, nil
}

// set up log configuration and return finalize function with internal error.
// when returned error, the finalize function is nil and need not be called.
func SetupLogConfig(conf *Config) (func(), error) {
	level, err := log.ParseLevel(conf.LogLevel)
	if err != nil {
		log.Infof("%v. use 'info' level insteadly.", err)
	}
	log.SetLevel(level)

	// set log distination
	var (
		dstString string
		writer    io.Writer
		closeFunc func()
	)
	switch logfile := conf.LogFile; logfile {
	case LogFileStdOut, "":
		dstString = "Stdout"
		writer = os.Stdout
		closeFunc = func() {}
	case LogFileStdErr:
		dstString = "Stderr"
		writer = os.Stderr
		closeFunc = func() {}
	default:
		dstString = logfile
		fp, err := filesystem.Store(logfile)
		if err != nil {
			return nil, err
		}
		writer = fp
		closeFunc = func() { fp.Close() }
	}
	logLimit := conf.LogLimitMegaByte * 1000 * 1000
	if logLimit < 0 {
		logLimit = 0
	}
	log.SetOutput(log.LimitWriter(writer, logLimit))
	if err := testingLogOutput("log output sanity check..."); err != nil {
		closeFunc()
		return nil, err
	}
	log.Debugf("Output log to %s", dstString)

	return closeFunc, nil
}

func testingLogOutput(msg string) error {
	log.Debug(msg)
	err := log.Err()
	switch {
	case errors.Is(err, log.ErrOutputDiscardedByLevel):
	case errors.Is(err, io.EOF):
	case err == nil:
	default:
		return fmt.Errorf("log output error: %w", err)
	}
	return nil // normal operation
}

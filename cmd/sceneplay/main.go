// Command sceneplay compiles a scene script and plays it headlessly.
//
// Dialogues are dismissed automatically, and dialogue texts, sound cues
// and signals are written to the log. It exits with non-zero status when
// the script or the resource manifest is broken, so that it is also
// used as a checker of scene scripts.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/mzki/puzzlescene"
	"github.com/mzki/puzzlescene/infra/buildinfo"
	"github.com/mzki/puzzlescene/util/log"
)

const (
	flagNameConfig   = "config"
	flagNameLogFile  = "logfile"
	flagNameLogLevel = "loglevel"
	flagNameManifest = "manifest"
	flagNameScript   = "script"
	flagNameScene    = "scene"
	flagNameTick     = "tick"
	flagNameWatch    = "watch"
	flagNameVersion  = "version"
)

// options not stored in config file.
type options struct {
	ConfigFile  string
	Scene       string
	Tick        time.Duration
	Watch       bool
	ShowVersion bool
}

func main() {
	os.Exit(run(flag.CommandLine, os.Args[1:]))
}

func run(flagSet *flag.FlagSet, args []string) int {
	opts := parseFlags(flagSet, args)
	if opts.ShowVersion {
		fmt.Println(buildinfo.Get())
		return 0
	}

	conf, err := puzzlescene.LoadConfigOrDefault(opts.ConfigFile)
	switch {
	case errors.Is(err, puzzlescene.ErrDefaultConfigGenerated):
		fmt.Fprintf(os.Stderr, "Config file (%v) does not exist. Use default config and write it to file.\n", opts.ConfigFile)
	case err != nil:
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 2
	}
	overwriteConfigByFlag(conf, flagSet)
	if err := conf.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		return 2
	}

	finalize, err := puzzlescene.SetupLogConfig(conf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to setup log: %v\n", err)
		return 2
	}
	defer finalize()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := withRecoverRun(func() error { return play(ctx, conf, opts) }); err != nil {
		log.Infof("Error: %v", err)
		return 1
	}
	return 0
}

// withRecoverRun runs fn and converts panic into error.
func withRecoverRun(fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return fn()
}

func parseFlags(flagSet *flag.FlagSet, args []string) options {
	flagSet.Usage = func() { printHelp(flagSet) }

	var opts options
	flagSet.StringVar(&opts.ConfigFile, flagNameConfig, puzzlescene.ConfigFile, "`config-file` to load. default config is written if not exist.")
	flagSet.String(flagNameLogFile, puzzlescene.DefaultLogFile, "`output-file` to write log. { stdout | stderr } is OK.")
	flagSet.String(flagNameLogLevel, puzzlescene.DefaultLogLevel, "`level` = { info | debug }.")
	flagSet.String(flagNameManifest, "", "resource `manifest` file. overwrites config.")
	flagSet.String(flagNameScript, "", "scene `script` file under the script directory. overwrites config.")
	flagSet.StringVar(&opts.Scene, flagNameScene, "intro", "`name` of the scene to play.")
	flagSet.DurationVar(&opts.Tick, flagNameTick, DefaultTick, "simulated frame `duration`.")
	flagSet.BoolVar(&opts.Watch, flagNameWatch, false, "replay the scene whenever the script or manifest is changed.")
	flagSet.BoolVar(&opts.ShowVersion, flagNameVersion, false, "show version info and quit.")

	// flag.ExitOnError exits by itself.
	_ = flagSet.Parse(args)
	return opts
}

// overwriteConfigByFlag overwrites conf by only the flags set explicitly.
func overwriteConfigByFlag(conf *puzzlescene.Config, flagSet *flag.FlagSet) {
	flagSet.Visit(func(f *flag.Flag) {
		v := f.Value.String()
		switch f.Name {
		case flagNameLogFile:
			conf.LogFile = v
		case flagNameLogLevel:
			conf.LogLevel = v
		case flagNameManifest:
			conf.Resource.Manifest = v
		case flagNameScript:
			conf.Script.LoadFile = v
		case flagNameWatch:
			conf.Script.ReloadFileChange = v == "true"
		}
	})
}

func printHelp(flagSet *flag.FlagSet) {
	progName := flagSet.Name()
	fmt.Fprintf(flagSet.Output(), `Usage: %s [options]

  %s plays a scene of the scene script without screen,
  and reports dialogues, sounds and signals of the scene.

  any flag values same as '%s' file overwrites the values
  loaded from the file.

`, progName, progName, puzzlescene.ConfigFile)
	flagSet.PrintDefaults()
}

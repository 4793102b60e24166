package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mzki/puzzlescene"
	"github.com/mzki/puzzlescene/filesystem"
	"github.com/mzki/puzzlescene/infra/script"
	"github.com/mzki/puzzlescene/resource"
	"github.com/mzki/puzzlescene/scene"
	"github.com/mzki/puzzlescene/signal"
	"github.com/mzki/puzzlescene/uiadapter/event/input"
	"github.com/mzki/puzzlescene/util/log"
)

const (
	DefaultTick = 16 * time.Millisecond
	// playback longer than this is regarded as never ending.
	MaxPlayDuration = 10 * time.Minute
)

// ErrNotFinished is returned when a scene is still running after MaxPlayDuration.
var ErrNotFinished = errors.New("scene does not finish")

// report is what happened in one playback.
type report struct {
	Duration  time.Duration
	Dialogues []string
	Sounds    []string
	Signals   []signal.Signal
	Truncated bool
}

// player plays a compiled scene with a fixed tick.
type player struct {
	config scene.Config
	tick   time.Duration
	limit  time.Duration
}

func newPlayer(config scene.Config, tick time.Duration) *player {
	if tick <= 0 {
		tick = DefaultTick
	}
	return &player{config: config, tick: tick, limit: MaxPlayDuration}
}

// Play runs sc until finished, dismissing every dialogue one tick after
// it is opened.
func (p *player) Play(ctx context.Context, sc *scene.Scene) (*report, error) {
	rep := &report{}
	queue := signal.NewQueue()
	cursor := sc.Start(queue, p.config)
	stage := cursor.Stage()

	var lastDialogue *scene.Dialogue
	collect := func() {
		for _, snd := range stage.TakeSounds() {
			log.Infof("sound: %s", snd.Name)
			rep.Sounds = append(rep.Sounds, snd.Name)
		}
		for _, sig := range queue.Drain() {
			log.Infof("signal: kind %d, value %d", sig.Kind, sig.Value)
			rep.Signals = append(rep.Signals, sig)
		}
		if d, ok := stage.Dialogue(); ok && (lastDialogue == nil || !sameDialogue(*lastDialogue, d)) {
			log.Infof("talk %d (%v, %v):\n  %s", d.Actor, d.Style, d.Anchor, strings.Join(d.Lines, "\n  "))
			rep.Dialogues = append(rep.Dialogues, d.Text)
			lastDialogue = &d
		}
	}
	collect()

	for !cursor.Finished() {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		if rep.Duration >= p.limit {
			log.Infof("scene does not finish within %v, stopped", p.limit)
			rep.Truncated = true
			break
		}
		ev := input.NewTick(p.tick)
		if _, ok := stage.Dialogue(); ok {
			// an open dialogue is always closed by the dismissal,
			// so a dialogue seen after this is a new one.
			ev = input.NewPointerDown(0, 0)
			lastDialogue = nil
		}
		cursor.Advance(p.tick, ev)
		rep.Duration += p.tick
		collect()
	}
	if !rep.Truncated {
		log.Infof("scene finished in %v", rep.Duration)
	}
	return rep, nil
}

func sameDialogue(a, b scene.Dialogue) bool {
	return a.Actor == b.Actor && a.Text == b.Text && a.Style == b.Style && a.Anchor == b.Anchor
}

// loadScene loads resources and the script and compiles the named scene.
func loadScene(ctx context.Context, conf *puzzlescene.Config, name string) (*scene.Scene, error) {
	catalog, _, err := resource.Load(filesystem.Default, conf.Resource)
	if err != nil {
		return nil, err
	}
	scenes, err := script.Load(ctx, filesystem.Default, conf.Script)
	if err != nil {
		return nil, err
	}
	action, ok := scenes[name]
	if !ok {
		return nil, fmt.Errorf("scene %q is not defined, available: %v", name, scenes.Names())
	}
	sc, err := scene.Compile(action, catalog)
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", name, err)
	}
	return sc, nil
}

func playOnce(ctx context.Context, conf *puzzlescene.Config, opts options) error {
	sc, err := loadScene(ctx, conf, opts.Scene)
	if err != nil {
		return err
	}
	log.Debugf("scene %q uses sprites %v, sounds %v, backgrounds %v", opts.Scene, sc.Sprites(), sc.Sounds(), sc.Backgrounds())
	rep, err := newPlayer(conf.Scene, opts.Tick).Play(ctx, sc)
	if err != nil {
		return err
	}
	if rep.Truncated {
		return fmt.Errorf("scene %q: %w within %v", opts.Scene, ErrNotFinished, MaxPlayDuration)
	}
	return nil
}

// play plays the scene once, or every time the files are changed
// when reload is enabled.
func play(ctx context.Context, conf *puzzlescene.Config, opts options) error {
	if !conf.Script.ReloadFileChange {
		return playOnce(ctx, conf, opts)
	}

	if err := playOnce(ctx, conf, opts); err != nil {
		log.Infof("Error: %v", err)
	}

	w, err := filesystem.OpenWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	scriptPath, err := conf.Script.Path()
	if err != nil {
		return err
	}
	for _, path := range []string{scriptPath, conf.Resource.Manifest} {
		if err := w.Watch(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
	}
	log.Infof("watching %s and %s, interrupt to quit", scriptPath, conf.Resource.Manifest)

	err = filesystem.WatchLoop(ctx, w, func(ev filesystem.WatchEvent) {
		log.Infof("%s is changed, replay", ev.Name)
		if err := playOnce(ctx, conf, opts); err != nil {
			log.Infof("Error: %v", err)
		}
	}, func(err error) {
		log.Infof("watch error: %v", err)
	})
	if err == context.Canceled {
		return nil
	}
	return err
}

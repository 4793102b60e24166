package scene

import (
	"fmt"
	"strings"
	"time"

	"github.com/mzki/puzzlescene/util/log"
)

type nodeKind uint8

const (
	kindSequence nodeKind = iota
	kindParallel
	kindRepeat
	kindWait
	kindPlace
	kindRemove
	kindSetPosition
	kindSetFrame
	kindSlide
	kindJump
	kindSetVisible
	kindSetLight
	kindTalk
	kindPlaySound
	kindSetBackground
	kindSignal
)

// node is a compiled Action stored in Scene.nodes.
// nodes are in pre-order so that descendants of nodes[i] are
// exactly nodes[i+1 : nodes[i].end].
type node struct {
	kind     nodeKind
	end      int
	children []int

	count    int // repeat
	duration time.Duration
	actor    Handle
	pos      Position
	frame    int
	flag     bool // visible or dark.
	flip     bool
	front    bool

	sprite     Sprite
	sound      Sound
	background Background

	style  TalkStyle
	anchor TalkAnchor
	text   string

	signalKind, signalValue int
}

type compiler struct {
	catalog Catalog
	nodes   []node
	path    []string
	errs    []error

	sprites     map[string]Sprite
	sounds      map[string]Sound
	backgrounds map[string]Background
}

// Compile resolves every resource referenced by script using catalog and
// returns immutable Scene. All of problems, unresolved names and invalid
// parameters, are reported at once by *CompileError.
func Compile(script Action, catalog Catalog) (*Scene, error) {
	if catalog == nil {
		return nil, fmt.Errorf("scene: nil catalog")
	}
	c := &compiler{
		catalog:     catalog,
		sprites:     make(map[string]Sprite),
		sounds:      make(map[string]Sound),
		backgrounds: make(map[string]Background),
	}
	c.compile(script)
	if len(c.errs) > 0 {
		return nil, &CompileError{Problems: c.errs}
	}
	return &Scene{
		nodes:       c.nodes,
		sprites:     c.sprites,
		sounds:      c.sounds,
		backgrounds: c.backgrounds,
	}, nil
}

func (c *compiler) errorf(err error, format string, args ...interface{}) {
	where := strings.Join(c.path, "/")
	c.errs = append(c.errs, fmt.Errorf("%s: %s: %w", where, fmt.Sprintf(format, args...), err))
}

func (c *compiler) checkDuration(d time.Duration) {
	if d < 0 {
		c.errorf(ErrNegativeTime, "duration %v", d)
	}
}

// compile appends a into nodes and returns its index.
func (c *compiler) compile(a Action) int {
	idx := len(c.nodes)
	c.nodes = append(c.nodes, node{})
	c.path = append(c.path, fmt.Sprintf("%d:%s", idx, actionName(a)))
	defer func() { c.path = c.path[:len(c.path)-1] }()

	var n node
	switch a := a.(type) {
	case Sequence:
		n.kind = kindSequence
		n.children = c.compileChildren(a.Actions)
	case Parallel:
		n.kind = kindParallel
		n.children = c.compileChildren(a.Actions)
	case Repeat:
		n.kind = kindRepeat
		switch {
		case a.Min < 0 || a.Max < a.Min:
			c.errorf(ErrInvalidRepeat, "min %d, max %d", a.Min, a.Max)
		case a.Min < a.Max:
			log.Debugf("scene: repeat range [%d, %d] is not fixed, run %d times", a.Min, a.Max, a.Min)
		}
		n.count = a.Min
		n.children = []int{c.compile(a.Action)}
	case Wait:
		n.kind = kindWait
		c.checkDuration(a.Duration)
		n.duration = a.Duration
	case Place:
		n.kind = kindPlace
		n.actor = a.Actor
		n.pos = a.Pos
		n.frame = a.Frame
		n.sprite = c.resolveSprite(a.Sprite)
		c.checkFrame(n.sprite, a.Frame)
	case Remove:
		n.kind = kindRemove
		n.actor = a.Actor
	case SetPosition:
		n.kind = kindSetPosition
		n.actor = a.Actor
		n.pos = a.Pos
	case SetFrame:
		n.kind = kindSetFrame
		n.actor = a.Actor
		n.frame = a.Frame
		if a.Frame < 0 {
			c.errorf(ErrInvalidFrame, "frame %d", a.Frame)
		}
	case Slide:
		n.kind = kindSlide
		n.actor = a.Actor
		n.pos = a.To
		n.flip = a.Flip
		n.front = a.Front
		c.checkDuration(a.Duration)
		n.duration = a.Duration
	case Jump:
		n.kind = kindJump
		n.actor = a.Actor
		n.pos = a.To
		c.checkDuration(a.Duration)
		n.duration = a.Duration
	case SetVisible:
		n.kind = kindSetVisible
		n.actor = a.Actor
		n.flag = a.Visible
	case SetLight:
		n.kind = kindSetLight
		n.flag = a.Dark
	case Talk:
		n.kind = kindTalk
		n.actor = a.Actor
		n.style = a.Style
		n.anchor = a.Anchor
		n.text = a.Text
		if a.Style.String() == "unknown" || a.Anchor.String() == "unknown" {
			c.errorf(ErrInvalidTalk, "style %d, anchor %d", a.Style, a.Anchor)
		}
	case PlaySound:
		n.kind = kindPlaySound
		n.sound = c.resolveSound(a.Sound)
	case SetBackground:
		n.kind = kindSetBackground
		n.background = c.resolveBackground(a.Name)
	case Signal:
		n.kind = kindSignal
		n.signalKind = a.Kind
		n.signalValue = a.Value
	case nil:
		c.errorf(ErrNilAction, "empty action")
	default:
		c.errorf(ErrUnknownAction, "%T", a)
	}
	n.end = len(c.nodes)
	c.nodes[idx] = n
	return idx
}

func (c *compiler) compileChildren(actions []Action) []int {
	children := make([]int, 0, len(actions))
	for _, a := range actions {
		children = append(children, c.compile(a))
	}
	return children
}

func (c *compiler) checkFrame(sp Sprite, frame int) {
	if frame < 0 || (sp.Frames > 0 && frame >= sp.Frames) {
		c.errorf(ErrInvalidFrame, "sprite %q frame %d of %d", sp.Name, frame, sp.Frames)
	}
}

func (c *compiler) resolveSprite(name string) Sprite {
	if sp, ok := c.sprites[name]; ok {
		return sp
	}
	sp, err := c.catalog.Sprite(name)
	if err != nil {
		c.errorf(err, "sprite %q", name)
		return Sprite{Name: name}
	}
	c.sprites[name] = sp
	return sp
}

func (c *compiler) resolveSound(name string) Sound {
	if s, ok := c.sounds[name]; ok {
		return s
	}
	s, err := c.catalog.Sound(name)
	if err != nil {
		c.errorf(err, "sound %q", name)
		return Sound{Name: name}
	}
	c.sounds[name] = s
	return s
}

func (c *compiler) resolveBackground(name string) Background {
	if bg, ok := c.backgrounds[name]; ok {
		return bg
	}
	bg, err := c.catalog.Background(name)
	if err != nil {
		c.errorf(err, "background %q", name)
		return Background{Name: name}
	}
	c.backgrounds[name] = bg
	return bg
}

func actionName(a Action) string {
	switch a.(type) {
	case Sequence:
		return "seq"
	case Parallel:
		return "par"
	case Repeat:
		return "repeat"
	case Wait:
		return "wait"
	case Place:
		return "place"
	case Remove:
		return "remove"
	case SetPosition:
		return "setpos"
	case SetFrame:
		return "setframe"
	case Slide:
		return "slide"
	case Jump:
		return "jump"
	case SetVisible:
		return "visible"
	case SetLight:
		return "light"
	case Talk:
		return "talk"
	case PlaySound:
		return "sound"
	case SetBackground:
		return "background"
	case Signal:
		return "signal"
	}
	return "?"
}

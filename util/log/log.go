// package log is a two level logger, info and debug, used by every
// package of the module. Debug output is for tracing scene playback and
// session transitions, and is discarded unless DebugLevel is set.
//
// The idea of only two levels comes from
// https://dave.cheney.net/2015/11/05/lets-talk-about-logging.
package log

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level of logging output.
type Level int8

const (
	InfoLevel  Level = iota // output only Info*
	DebugLevel              // output all, Info* and Debug*
)

func (l Level) String() string {
	switch l {
	case InfoLevel:
		return "info"
	case DebugLevel:
		return "debug"
	}
	return fmt.Sprintf("Level(%d)", int8(l))
}

// ParseLevel returns logging level from its name, "info" or "debug",
// ignoring case. Empty name is treated as "info".
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(name) {
	case "", "info":
		return InfoLevel, nil
	case "debug":
		return DebugLevel, nil
	}
	return InfoLevel, fmt.Errorf("unknown log level: %q", name)
}

// DebugPrefix is put before the message of Debug*, after the logger prefix.
const DebugPrefix = "DEBUG: "

// ErrOutputDiscardedByLevel is recorded when Debug* is called with InfoLevel.
var ErrOutputDiscardedByLevel = errors.New("log output discarded by different log level")

// Logger does not return output error to callers. The result of the
// latest output is kept instead and can be retrieved by Err().
// It is safe for concurrent use.
type Logger struct {
	mu      sync.Mutex
	logger  *log.Logger
	level   Level
	lastErr error
}

// New returns Logger with InfoLevel. prefix and flag are same as standard log.
func New(out io.Writer, prefix string, flag int) *Logger {
	return &Logger{logger: log.New(out, prefix, flag), level: InfoLevel}
}

// output writes msg if level is enabled. calldepth counts frames
// from the caller of exported function.
func (l *Logger) output(level Level, calldepth int, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level > l.level {
		l.lastErr = ErrOutputDiscardedByLevel
		return
	}
	if level == DebugLevel {
		msg = DebugPrefix + msg
	}
	l.lastErr = l.logger.Output(calldepth+2, msg)
}

func (l *Logger) Info(v ...interface{})   { l.output(InfoLevel, 1, fmt.Sprint(v...)) }
func (l *Logger) Infoln(v ...interface{}) { l.output(InfoLevel, 1, fmt.Sprintln(v...)) }
func (l *Logger) Infof(format string, v ...interface{}) {
	l.output(InfoLevel, 1, fmt.Sprintf(format, v...))
}

func (l *Logger) Debug(v ...interface{})   { l.output(DebugLevel, 1, fmt.Sprint(v...)) }
func (l *Logger) Debugln(v ...interface{}) { l.output(DebugLevel, 1, fmt.Sprintln(v...)) }
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.output(DebugLevel, 1, fmt.Sprintf(format, v...))
}

func (l *Logger) SetOutput(w io.Writer) { l.logger.SetOutput(w) }

func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *Logger) Level() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// DebugEnabled returns whether Debug* outputs. Use it to avoid
// building expensive messages which are discarded.
func (l *Logger) DebugEnabled() bool { return l.Level() >= DebugLevel }

// Err returns the result of the latest output only, e.g.
//
//	logger.Info("1") --> fails
//	logger.Info("2") --> succeeds
//	logger.Err() --> nil
//
// Debug* discarded by InfoLevel results ErrOutputDiscardedByLevel.
func (l *Logger) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}

// flags same as standard log.
const (
	Ldate         = log.Ldate
	Ltime         = log.Ltime
	Lmicroseconds = log.Lmicroseconds
	Llongfile     = log.Llongfile
	Lshortfile    = log.Lshortfile
	LUTC          = log.LUTC
	LstdFlags     = log.LstdFlags
)

var std = New(os.Stdout, "", LstdFlags)

func Info(v ...interface{})                  { std.output(InfoLevel, 1, fmt.Sprint(v...)) }
func Infoln(v ...interface{})                { std.output(InfoLevel, 1, fmt.Sprintln(v...)) }
func Infof(format string, v ...interface{})  { std.output(InfoLevel, 1, fmt.Sprintf(format, v...)) }
func Debug(v ...interface{})                 { std.output(DebugLevel, 1, fmt.Sprint(v...)) }
func Debugln(v ...interface{})               { std.output(DebugLevel, 1, fmt.Sprintln(v...)) }
func Debugf(format string, v ...interface{}) { std.output(DebugLevel, 1, fmt.Sprintf(format, v...)) }

func SetOutput(w io.Writer) { std.SetOutput(w) }
func SetLevel(level Level)  { std.SetLevel(level) }
func CurrentLevel() Level   { return std.Level() }
func DebugEnabled() bool    { return std.DebugEnabled() }
func Err() error            { return std.Err() }

// LimitWriter returns a Writer that writes to w but fails with io.EOF
// once n bytes are written. n <= 0 means no limit.
func LimitWriter(w io.Writer, n int64) io.Writer {
	if n <= 0 {
		return w
	}
	return &limitedWriter{w: w, left: n}
}

type limitedWriter struct {
	w    io.Writer
	left int64
}

func (l *limitedWriter) Write(p []byte) (int, error) {
	if l.left <= 0 {
		return 0, io.EOF
	}
	if int64(len(p)) > l.left {
		p = p[:l.left]
	}
	n, err := l.w.Write(p)
	l.left -= int64(n)
	return n, err
}

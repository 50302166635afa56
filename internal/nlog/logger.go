/*
MIT License

Copyright (c) 2021 Nicolas JUHEL

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package nlog

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger is the process-wide leveled logger handed to the launcher, the
// scrape server and every collector that needs to report a startup
// condition.
type Logger struct {
	lr  *logrus.Logger
	lvl Level
}

func defaultFormatter() logrus.Formatter {
	return &logrus.TextFormatter{
		DisableTimestamp: false,
		FullTimestamp:    true,
		TimestampFormat:  time.RFC3339,
		DisableSorting:   false,
		PadLevelText:     true,
	}
}

// New builds a Logger writing formatted lines to out at the given level.
// A nil out defaults to os.Stderr, matching daemon convention: foreground
// runs log to the console, and the daemonize path redirects stderr to
// /dev/null unless a log file hook is layered on separately.
func New(lvl Level, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}

	lr := logrus.New()
	lr.SetOutput(out)
	lr.SetFormatter(defaultFormatter())
	lr.SetLevel(toLogrusLevel(lvl))

	return &Logger{lr: lr, lvl: lvl}
}

func toLogrusLevel(l Level) logrus.Level {
	switch l {
	case PanicLevel:
		return logrus.PanicLevel
	case FatalLevel:
		return logrus.FatalLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	case WarnLevel:
		return logrus.WarnLevel
	case InfoLevel:
		return logrus.InfoLevel
	case DebugLevel:
		return logrus.DebugLevel
	default:
		// NilLevel has no logrus counterpart; Logger.Entry drops every
		// entry while the logger is at NilLevel, so this value is never
		// consulted for filtering.
		return logrus.PanicLevel + 100
	}
}

// SetLevel updates the minimum level that will be emitted.
func (l *Logger) SetLevel(lvl Level) {
	l.lvl = lvl
	l.lr.SetLevel(toLogrusLevel(lvl))
}

// Entry starts a new log entry at lvl with the given message. While the
// logger is at NilLevel the entry is created at NilLevel and Log() emits
// nothing.
func (l *Logger) Entry(lvl Level, message string) *Entry {
	if l.lvl == NilLevel {
		lvl = NilLevel
	}
	return &Entry{
		lr:      l.lr,
		lvl:     lvl,
		message: message,
		fields:  logrus.Fields{},
	}
}

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

import "github.com/sirupsen/logrus"

// Entry is a single in-flight log message being assembled before Log().
type Entry struct {
	lr      *logrus.Logger
	lvl     Level
	message string
	fields  logrus.Fields
}

// Field attaches a structured key/value to the entry.
func (e *Entry) Field(key string, value any) *Entry {
	e.fields[key] = value
	return e
}

// ErrorAdd attaches err under the "error" field when non-nil.
func (e *Entry) ErrorAdd(err error) *Entry {
	if err != nil {
		e.fields["error"] = err.Error()
	}
	return e
}

// Log emits the entry at its level.
func (e *Entry) Log() {
	le := e.lr.WithFields(e.fields)
	switch e.lvl {
	case PanicLevel:
		le.Panic(e.message)
	case FatalLevel:
		le.Fatal(e.message)
	case ErrorLevel:
		le.Error(e.message)
	case WarnLevel:
		le.Warn(e.message)
	case InfoLevel:
		le.Info(e.message)
	case DebugLevel:
		le.Debug(e.message)
	}
}

/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package xerr

import (
	"fmt"
	"runtime"
)

var messages = make(map[CodeError]string)

// Register associates a human-readable message with a code. Called once
// from each package's init().
func Register(code CodeError, message string) {
	messages[code] = message
}

func (c CodeError) Message() string {
	if m, ok := messages[c]; ok {
		return m
	}
	return "unknown error"
}

// Error is a code-classified error carrying the call site that raised it
// and an optional wrapped parent.
type Error struct {
	code   CodeError
	parent error
	file   string
	line   int
}

// New constructs an Error for code, capturing the immediate caller's
// file:line and optionally wrapping parent.
func New(code CodeError, parent error) *Error {
	_, file, line, _ := runtime.Caller(1)
	return &Error{code: code, parent: parent, file: file, line: line}
}

func (e *Error) Error() string {
	if e.parent != nil {
		return fmt.Sprintf("[%d] %s: %s (%s:%d)", e.code, e.code.Message(), e.parent.Error(), e.file, e.line)
	}
	return fmt.Sprintf("[%d] %s (%s:%d)", e.code, e.code.Message(), e.file, e.line)
}

func (e *Error) Unwrap() error {
	return e.parent
}

func (e *Error) Code() CodeError {
	return e.code
}

// Error constructs an Error of this code wrapping parent (may be nil).
func (c CodeError) Error(parent error) *Error {
	_, file, line, _ := runtime.Caller(1)
	return &Error{code: c, parent: parent, file: file, line: line}
}

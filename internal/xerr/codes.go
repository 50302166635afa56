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

// Package xerr is a small per-package error-code scheme: a numeric
// CodeError classification plus an init-registered message table per
// package, used only for startup-fatal categories (bind/listen failure,
// collector init failure, flag parse failure). Connection-local and
// source-missing errors never reach this package: they are recovered
// locally (close the connection, treat as "no samples") and must never
// surface past that boundary, so wrapping them in a rich error type would
// be dead plumbing.
package xerr

// CodeError is a numeric error classification, namespaced per package via
// the MinPkg* offsets below so two packages never collide.
type CodeError uint16

const (
	UnknownError CodeError = 0

	MinPkgLauncher  CodeError = 100
	MinPkgScrape    CodeError = 200
	MinPkgCollector CodeError = 300

	MinAvailable CodeError = 1000
)

// Uint16 returns the raw code value.
func (c CodeError) Uint16() uint16 {
	return uint16(c)
}

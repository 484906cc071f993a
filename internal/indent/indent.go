// Copyright 2015 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package indent prefixes every line of a text with a fixed string. It
// backs cmd/mformat's --dump-ast output, where each level of the printed
// tree is indented by nesting Writers.
//
// A prefix is emitted lazily, immediately before the first byte of each
// line -- never eagerly for a line that turns out to be empty and final.
// That is what makes String("x\n") and Writer fed "x\n" (with nothing
// following) agree: neither emits a trailing prefix-only line.
package indent

import "io"

// String returns in with prefix inserted before every line.
func String(prefix, in string) string {
	if in == "" {
		return ""
	}
	out := make([]byte, 0, len(prefix)+len(in))
	start := true
	for i := 0; i < len(in); i++ {
		if start {
			out = append(out, prefix...)
			start = false
		}
		out = append(out, in[i])
		if in[i] == '\n' {
			start = true
		}
	}
	return string(out)
}

// Bytes is String for a byte-slice input.
func Bytes(prefix string, in []byte) []byte {
	if len(in) == 0 {
		return nil
	}
	out := make([]byte, 0, len(prefix)+len(in))
	start := true
	for i := 0; i < len(in); i++ {
		if start {
			out = append(out, prefix...)
			start = false
		}
		out = append(out, in[i])
		if in[i] == '\n' {
			start = true
		}
	}
	return out
}

// Writer wraps an io.Writer, inserting prefix before the first byte of
// every line written across any number of Write calls.
type Writer struct {
	w      io.Writer
	prefix string
	start  bool
}

// NewWriter returns a Writer that indents everything written to it with
// prefix before handing it to w.
func NewWriter(w io.Writer, prefix string) *Writer {
	return &Writer{w: w, prefix: prefix, start: true}
}

// Write indents data and writes it to the underlying writer. The returned
// count is in terms of bytes of data consumed, not the (larger) number of
// bytes actually written to the underlying writer once prefixes are added.
func (w *Writer) Write(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}

	transformed := make([]byte, 0, len(data)+len(w.prefix))
	boundaries := make([]int, 0, len(data)+len(w.prefix))
	start := w.start
	origCount := 0

	for i := 0; i < len(data); i++ {
		if start {
			transformed = append(transformed, w.prefix...)
			for range w.prefix {
				boundaries = append(boundaries, origCount)
			}
			start = false
		}
		transformed = append(transformed, data[i])
		origCount++
		boundaries = append(boundaries, origCount)
		if data[i] == '\n' {
			start = true
		}
	}

	nn, err := w.w.Write(transformed)
	if nn > len(transformed) {
		nn = len(transformed)
	}

	origN := 0
	if nn > 0 {
		origN = boundaries[nn-1]
	}

	switch {
	case origN >= len(data):
		w.start = start
	case origN > 0 && data[origN-1] == '\n':
		w.start = true
	}

	return origN, err
}

/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package protocol

import (
	"encoding/binary"
)

// Field describes position of a single field in a fixed-size wire structure
type Field struct {
	Name   string
	Offset int
	Width  int
}

// End returns offset of the first byte after the field
func (f Field) End() int {
	return f.Offset + f.Width
}

/*
writer is a bounds-checked big endian cursor over a fixed region of a buffer.
Every put checks that field it's about to write matches the cursor position,
so a layout table and the code writing it can't drift apart silently.
Region is validated once in newWriter, after that writes can't go out of bounds.
*/
type writer struct {
	b   []byte
	pos int
}

// newWriter returns writer over first size bytes of b
func newWriter(b []byte, size int, what string) (*writer, error) {
	if len(b) < size {
		return nil, bufferTooSmall(what, size, len(b))
	}
	return &writer{b: b[:size]}, nil
}

func (w *writer) at(f Field) []byte {
	if f.Offset != w.pos || f.End() > len(w.b) {
		panic("protocol: field " + f.Name + " written out of order")
	}
	w.pos = f.End()
	return w.b[f.Offset:f.End()]
}

func (w *writer) putUint8(f Field, v uint8) {
	w.at(f)[0] = v
}

func (w *writer) putUint16(f Field, v uint16) {
	binary.BigEndian.PutUint16(w.at(f), v)
}

func (w *writer) putUint32(f Field, v uint32) {
	binary.BigEndian.PutUint32(w.at(f), v)
}

func (w *writer) putUint64(f Field, v uint64) {
	binary.BigEndian.PutUint64(w.at(f), v)
}

func (w *writer) putBytes(f Field, v []byte) {
	copy(w.at(f), v)
}

// zero fills the field with zeroes
func (w *writer) zero(f Field) {
	clear(w.at(f))
}

// len returns number of bytes written so far
func (w *writer) len() int {
	return w.pos
}

// reader is the decoding counterpart of writer
type reader struct {
	b []byte
}

// newReader returns reader over first size bytes of b
func newReader(b []byte, size int, what string) (*reader, error) {
	if len(b) < size {
		return nil, truncatedInput(what, size, len(b))
	}
	return &reader{b: b[:size]}, nil
}

func (r *reader) at(f Field) []byte {
	return r.b[f.Offset:f.End()]
}

func (r *reader) uint8(f Field) uint8 {
	return r.at(f)[0]
}

func (r *reader) uint16(f Field) uint16 {
	return binary.BigEndian.Uint16(r.at(f))
}

func (r *reader) uint32(f Field) uint32 {
	return binary.BigEndian.Uint32(r.at(f))
}

func (r *reader) uint64(f Field) uint64 {
	return binary.BigEndian.Uint64(r.at(f))
}

func (r *reader) bytes(f Field, dst []byte) {
	copy(dst, r.at(f))
}

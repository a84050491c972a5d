// renderer/commandbuffer.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"errors"
	"io"
	"slices"

	"github.com/mmp/diversionwheel/math"
	"github.com/mmp/diversionwheel/util"

	"github.com/brunoga/deep"
)

var ErrUnbalancedState = errors.New("RestoreState without matching SaveState")

// The command buffer stores a series of drawing commands, represented by
// the following values. The comments after each one describe which
// Command fields it uses.
type Op int

const (
	OpSaveState    Op = iota // no args
	OpRestoreState           // no args
	OpTransform              // M: the matrix applied
	OpLine                   // P[0], P[1]: endpoints
	OpCircle                 // P[0]: center, Radius
	OpText                   // P[0]: baseline start, Text
)

func (op Op) String() string {
	switch op {
	case OpSaveState:
		return "SaveState"
	case OpRestoreState:
		return "RestoreState"
	case OpTransform:
		return "Transform"
	case OpLine:
		return "Line"
	case OpCircle:
		return "Circle"
	case OpText:
		return "Text"
	default:
		return "Unknown"
	}
}

// Command is a single recorded drawing command. Along with the arguments
// that were passed to the Canvas method, it records the transformation
// that was current when it was issued and how deeply nested in
// SaveState calls it was, which makes it possible to reason about the
// page-space geometry after the fact.
type Command struct {
	Op     Op            `msgpack:"op"`
	P      [2][2]float32 `msgpack:"p"`
	Radius float32       `msgpack:"r"`
	Text   string        `msgpack:"t"`
	M      math.Matrix3  `msgpack:"m"`
	CTM    math.Matrix3  `msgpack:"ctm"`
	Depth  int           `msgpack:"d"`
}

// CommandBuffer is a Canvas that records the drawing commands issued to
// it so that they can be inspected, saved, or replayed to another Canvas
// later. It makes it possible to "pre-bake" a page in a form that is
// independent of the output format.
type CommandBuffer struct {
	Commands []Command

	metrics FontMetrics
	ctm     math.Matrix3
	stack   []math.Matrix3
	err     error
}

// MakeCommandBuffer returns an empty CommandBuffer; metrics is used to
// answer StringWidth queries while recording.
func MakeCommandBuffer(metrics FontMetrics) *CommandBuffer {
	return &CommandBuffer{metrics: metrics, ctm: math.Identity3x3()}
}

// Reset resets the command buffer's length to zero so that it can be
// reused.
func (cb *CommandBuffer) Reset() {
	cb.Commands = cb.Commands[:0]
	cb.ctm = math.Identity3x3()
	cb.stack = cb.stack[:0]
	cb.err = nil
}

// Err returns the first error encountered while recording.
func (cb *CommandBuffer) Err() error {
	return cb.err
}

func (cb *CommandBuffer) append(c Command) {
	c.CTM = cb.ctm
	c.Depth = len(cb.stack)
	cb.Commands = append(cb.Commands, c)
}

func (cb *CommandBuffer) StringWidth(s string) float32 {
	if cb.metrics == nil {
		return 0
	}
	return cb.metrics.StringWidth(s)
}

func (cb *CommandBuffer) SaveState() {
	cb.append(Command{Op: OpSaveState})
	cb.stack = append(cb.stack, cb.ctm)
}

func (cb *CommandBuffer) RestoreState() {
	if len(cb.stack) == 0 {
		if cb.err == nil {
			cb.err = ErrUnbalancedState
		}
		return
	}
	cb.ctm = cb.stack[len(cb.stack)-1]
	cb.stack = cb.stack[:len(cb.stack)-1]
	cb.append(Command{Op: OpRestoreState})
}

func (cb *CommandBuffer) Transform(m math.Matrix3) {
	cb.ctm = cb.ctm.PostMultiply(m)
	cb.append(Command{Op: OpTransform, M: m})
}

func (cb *CommandBuffer) Line(p0, p1 [2]float32) {
	cb.append(Command{Op: OpLine, P: [2][2]float32{p0, p1}})
}

func (cb *CommandBuffer) Circle(center [2]float32, radius float32) {
	cb.append(Command{Op: OpCircle, P: [2][2]float32{center}, Radius: radius})
}

func (cb *CommandBuffer) Text(p [2]float32, s string) {
	cb.append(Command{Op: OpText, P: [2][2]float32{p}, Text: s})
}

// Count returns the number of recorded commands with the given op.
func (cb *CommandBuffer) Count(op Op) int {
	n := 0
	for _, c := range cb.Commands {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Bounds returns the page-space extent of the recorded geometry. Text is
// accounted for by its starting point only.
func (cb *CommandBuffer) Bounds() math.Extent2D {
	e := math.EmptyExtent2D()
	for _, c := range cb.Commands {
		switch c.Op {
		case OpLine:
			e = math.Union(e, c.CTM.TransformPoint(c.P[0]))
			e = math.Union(e, c.CTM.TransformPoint(c.P[1]))
		case OpCircle:
			for _, p := range math.CirclePoints(64) {
				e = math.Union(e, c.CTM.TransformPoint(math.Add2f(c.P[0], math.Scale2f(p, c.Radius))))
			}
		case OpText:
			e = math.Union(e, c.CTM.TransformPoint(c.P[0]))
		}
	}
	return e
}

// Replay issues all of the recorded commands to c, in order.
func (cb *CommandBuffer) Replay(c Canvas) error {
	for _, cmd := range cb.Commands {
		switch cmd.Op {
		case OpSaveState:
			c.SaveState()
		case OpRestoreState:
			c.RestoreState()
		case OpTransform:
			c.Transform(cmd.M)
		case OpLine:
			c.Line(cmd.P[0], cmd.P[1])
		case OpCircle:
			c.Circle(cmd.P[0], cmd.Radius)
		case OpText:
			c.Text(cmd.P[0], cmd.Text)
		}
	}
	return cb.err
}

// Equal reports whether the two buffers hold identical commands.
func (cb *CommandBuffer) Equal(other *CommandBuffer) bool {
	return slices.Equal(cb.Commands, other.Commands)
}

// Clone returns a deep copy of the buffer that shares its font metrics.
func (cb *CommandBuffer) Clone() *CommandBuffer {
	return &CommandBuffer{
		Commands: deep.MustCopy(cb.Commands),
		metrics:  cb.metrics,
		ctm:      cb.ctm,
		stack:    slices.Clone(cb.stack),
		err:      cb.err,
	}
}

// Save writes the recorded commands to w in the msgpack+zstd format.
func (cb *CommandBuffer) Save(w io.Writer) error {
	return util.StoreObject(w, cb.Commands)
}

func (cb *CommandBuffer) SaveFile(path string) error {
	return util.StoreObjectFile(path, cb.Commands)
}

// LoadCommandBuffer reads commands written by Save; the returned buffer
// has no font metrics and so can only be inspected or replayed.
func LoadCommandBuffer(r io.Reader) (*CommandBuffer, error) {
	cb := MakeCommandBuffer(nil)
	if err := util.RetrieveObject(r, &cb.Commands); err != nil {
		return nil, err
	}
	return cb, nil
}

func LoadCommandBufferFile(path string) (*CommandBuffer, error) {
	cb := MakeCommandBuffer(nil)
	if err := util.RetrieveObjectFile(path, &cb.Commands); err != nil {
		return nil, err
	}
	return cb, nil
}

// log/stack.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package log

import (
	"log/slog"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

const modulePath = "github.com/mmp/diversionwheel/"

// maxStackDepth bounds how many calls are recorded with each message.
const maxStackDepth = 8

// Frame is one call in a Stack.
type Frame struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Function string `json:"function"`
}

func (f Frame) String() string {
	return f.File + ":" + strconv.Itoa(f.Line) + ":" + f.Function
}

// Stack is the chain of calls that led to a log message, innermost
// first.
type Stack []Frame

// CallerStack returns the calls leading to the function that called the
// caller of CallerStack, i.e. to the site of a Logger method call when
// used inside one. skip drops that many more frames. Frames in the Go
// runtime and the testing package are left out.
func CallerStack(skip int) Stack {
	var pcs [maxStackDepth]uintptr
	n := runtime.Callers(3+skip, pcs[:])
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pcs[:n])
	s := make(Stack, 0, n)
	for {
		f, more := frames.Next()
		if strings.HasPrefix(f.Function, "runtime.") || strings.HasPrefix(f.Function, "testing.") {
			break
		}

		fn := strings.TrimPrefix(f.Function, modulePath)
		s = append(s, Frame{
			File:     filepath.Base(f.File),
			Line:     f.Line,
			Function: strings.TrimPrefix(fn, "main."),
		})

		if !more || f.Function == "main.main" {
			break
		}
	}
	return s
}

// LogValue reports the stack as a list of "file:line:function" strings,
// which reads better in text logs than a list of objects.
func (s Stack) LogValue() slog.Value {
	strs := make([]string, len(s))
	for i, f := range s {
		strs[i] = f.String()
	}
	return slog.AnyValue(strs)
}

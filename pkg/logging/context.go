// pkg/logging/context.go
package logging

// Token marks a stack position. Pop restores the stack to the state it
// had when the token was issued.
type Token int

// Stack holds ambient context frames for one logical execution scope.
// Frames merge outermost to innermost into every emitted entry, inner
// keys overriding outer on collision.
//
// A Stack belongs to exactly one Logger and is not safe for concurrent
// mutation; parallel workers each own their own Logger.
type Stack struct {
	frames []Fields
}

// NewStack returns an empty stack.
func NewStack() *Stack {
	return &Stack{}
}

// Push adds a frame and returns a token for Pop. The frame is copied,
// so later caller mutation does not leak into the stack.
func (s *Stack) Push(frame Fields) Token {
	tok := Token(len(s.frames))
	s.frames = append(s.frames, frame.clone())
	return tok
}

// Pop truncates the stack back to the token's depth. Popping an outer
// token also discards frames pushed after it, so early exits that skip
// inner pops still restore the exact prior state.
func (s *Stack) Pop(tok Token) {
	if int(tok) < 0 || int(tok) > len(s.frames) {
		return
	}
	s.frames = s.frames[:int(tok)]
}

// Depth returns the number of active frames.
func (s *Stack) Depth() int {
	return len(s.frames)
}

// Effective returns the last-write-wins union of all active frames.
// It never mutates the stack.
func (s *Stack) Effective() Fields {
	out := make(Fields)
	for _, frame := range s.frames {
		for k, v := range frame {
			out[k] = v
		}
	}
	return out
}

// Context pushes kv as an ambient frame and returns the release
// closure. Scoped use is the only supported pattern:
//
//	defer logger.Context(logging.Fields{"operation": "index"})()
//
// The release runs unconditionally via defer, so panics and early
// returns still restore the prior stack.
func (l *Logger) Context(kv Fields) func() {
	tok := l.stack.Push(kv)
	return func() { l.stack.Pop(tok) }
}

// TestContext is Context plus an injected test=true marker key.
// It is a composition over Context, not a separate mechanism.
func (l *Logger) TestContext(kv Fields) func() {
	marked := kv.clone()
	marked["test"] = true
	return l.Context(marked)
}

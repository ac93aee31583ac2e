package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals only send key repeats, so movement needs a hold window longer than
// the typical repeat interval.
const keyHoldDuration = 80 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	Quit   bool
	Left   bool
	Right  bool
	Up     bool
	Down   bool
	Bomb   bool // Space
	Kick   bool
	Enter  bool
	Escape bool
	// Pressed holds the raw bytes received this frame.
	Pressed []byte
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit   time.Time
	left   time.Time
	right  time.Time
	up     time.Time
	down   time.Time
	bomb   time.Time
	kick   time.Time
	enter  time.Time
	escape time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch    chan byte
	state keyState
	now   func() time.Time
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

func newStream() *Stream {
	return &Stream{
		ch:  make(chan byte, 128),
		now: time.Now,
	}
}

// ResetKeyInput forgets held keys, so a key used to confirm a menu does not
// leak into gameplay.
func ResetKeyInput(s *Stream) {
	s.state = keyState{}
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and accumulates all pressed keys.
// Uses key state persistence to allow detecting simultaneous key combinations.
func ReadInput(s *Stream) Input {
	now := s.now()
	var buf []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				s.state.up = now
				i += 2
				continue
			case 'B':
				s.state.down = now
				i += 2
				continue
			case 'C':
				s.state.right = now
				i += 2
				continue
			case 'D':
				s.state.left = now
				i += 2
				continue
			}
		}

		applyByteToState(&s.state, b, now)
	}

	held := func(t time.Time) bool { return now.Sub(t) < keyHoldDuration }
	return Input{
		Quit:    held(s.state.quit),
		Left:    held(s.state.left),
		Right:   held(s.state.right),
		Up:      held(s.state.up),
		Down:    held(s.state.down),
		Bomb:    held(s.state.bomb),
		Kick:    held(s.state.kick),
		Enter:   held(s.state.enter),
		Escape:  held(s.state.escape),
		Pressed: buf,
	}
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q':
		state.quit = now
	case 'a', 'A', 'h', 'H':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case 'w', 'W', 'k', 'K':
		state.up = now
	case 's', 'S', 'j', 'J':
		state.down = now
	case ' ':
		state.bomb = now
	case 'e', 'E', 'f', 'F':
		state.kick = now
	case '\n', '\r':
		state.enter = now
	case '\x1b':
		state.escape = now
	}
}

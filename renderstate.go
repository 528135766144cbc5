package webexport

import "sync"

// viewState is a bitset of independent completion facts about the embedded
// browser page.
type viewState uint8

const (
	// stateStarted is the empty state entered when document loading begins.
	stateStarted viewState = 0

	// stateLoadFinished is set when the page load completed.
	stateLoadFinished viewState = 1 << iota

	// stateWorkFinished is set when the render/highlight work completed.
	stateWorkFinished

	// stateFailed is set when the renderer signals an error. Once set it
	// short-circuits all further waiting.
	stateFailed
)

// renderState tracks completion signals of one export. Bits accumulate
// monotonically from Reset until the export ends. Signal callbacks arrive
// on browser goroutines, so access is mutex-guarded.
type renderState struct {
	mu    sync.Mutex
	state viewState
}

// Reset clears all bits back to the started state.
func (s *renderState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = stateStarted
}

// MarkLoadFinished records page load completion.
func (s *renderState) MarkLoadFinished() {
	s.mark(stateLoadFinished)
}

// MarkWorkFinished records render work completion.
func (s *renderState) MarkWorkFinished() {
	s.mark(stateWorkFinished)
}

// MarkFailed records a renderer failure.
func (s *renderState) MarkFailed() {
	s.mark(stateFailed)
}

func (s *renderState) mark(bit viewState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state |= bit
}

// Ready reports whether both completion bits are set and no failure bit is
// set. Load and work signals may arrive in either order.
func (s *renderState) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == stateLoadFinished|stateWorkFinished
}

// Failed reports whether the failure bit is set, independently of the
// completion bits.
func (s *renderState) Failed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state&stateFailed != 0
}

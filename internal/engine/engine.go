package engine

// Placement describes the outcome of Engine.Place.
type Placement struct {
	// Element is the value that was placed.
	Element int
	// Pile is the index of the pile the element now sits on.
	Pile int
	// Created is true when the element started a new pile.
	Created bool
}

// Engine owns the state of one patience-sort run: the input, the piles, the index of the
// next element, the element under inspection and the pile chosen for it.
// It is not safe for concurrent use; the controller serialises access.
type Engine struct {
	input   []int
	piles   Piles
	sorted  []int
	index   int
	current int
	target  int
}

// New constructs an empty Engine with no input loaded.
func New() *Engine {
	return &Engine{target: -1}
}

// Load stores a copy of values as the run input and resets all progress.
func (e *Engine) Load(values []int) {
	e.input = append([]int(nil), values...)
	e.Reset()
}

// Reset clears piles, the sorted result and progress, keeping the loaded input.
func (e *Engine) Reset() {
	e.piles = nil
	e.sorted = nil
	e.index = 0
	e.current = 0
	e.target = -1
}

// Loaded reports whether an input sequence is present.
func (e *Engine) Loaded() bool { return len(e.input) > 0 }

// Len returns the input length.
func (e *Engine) Len() int { return len(e.input) }

// Index returns the number of elements already placed.
func (e *Engine) Index() int { return e.index }

// Current returns the element under inspection.
func (e *Engine) Current() int { return e.current }

// Target returns the pile chosen by the last FindPile, or -1.
func (e *Engine) Target() int { return e.target }

// Done reports whether every input element has been placed.
func (e *Engine) Done() bool { return e.index >= len(e.input) }

// Reconstructed reports whether the sorted result has been built.
func (e *Engine) Reconstructed() bool { return e.sorted != nil }

// Input returns a copy of the loaded sequence.
func (e *Engine) Input() []int { return append([]int(nil), e.input...) }

// Piles returns a deep copy of the pile collection.
func (e *Engine) Piles() Piles { return e.piles.Clone() }

// Sorted returns a copy of the sorted result, nil before reconstruction.
func (e *Engine) Sorted() []int {
	if e.sorted == nil {
		return nil
	}
	return append([]int(nil), e.sorted...)
}

// Highlight selects the next input element as the current one and returns it.
func (e *Engine) Highlight() int {
	e.current = e.input[e.index]
	return e.current
}

// FindPile searches the piles for the current element and records the result.
func (e *Engine) FindPile() int {
	e.target = FindTargetPile(e.current, e.piles)
	return e.target
}

// Place puts the current element on the recorded target pile, clears the target
// and advances the index.
func (e *Engine) Place() Placement {
	pl := Placement{Element: e.current, Pile: e.target, Created: e.target == -1}
	e.piles = PlaceElement(e.current, e.target, e.piles)
	if pl.Created {
		pl.Pile = len(e.piles) - 1
	}
	e.target = -1
	e.index++
	return pl
}

// Reconstruct builds the sorted result from a copy of the piles. Later calls return the
// result built by the first one.
func (e *Engine) Reconstruct() []int {
	if e.sorted == nil {
		e.sorted = Reconstruct(e.piles)
	}
	return e.Sorted()
}

package input

import (
	"fmt"
	"math/rand/v2"
)

// RandomOptions bounds the sequences produced by Random.
type RandomOptions struct {
	// MinLength is the smallest length generated; values below MinLength are raised to it.
	MinLength int `yaml:"minLength,omitempty"`
	// MaxLength is the largest length generated.
	MaxLength int `yaml:"maxLength,omitempty"`
	// MaxValue is the largest element value; elements are drawn from 1..MaxValue.
	MaxValue int `yaml:"maxValue,omitempty"`
}

// DefaultRandomOptions returns 10..20 elements drawn from 1..99.
func DefaultRandomOptions() RandomOptions {
	return RandomOptions{MinLength: MinLength, MaxLength: 20, MaxValue: 99}
}

// Normalize fills zero fields from the defaults and checks the bounds.
func (o RandomOptions) Normalize() (RandomOptions, error) {
	def := DefaultRandomOptions()
	if o.MinLength == 0 {
		o.MinLength = def.MinLength
	}
	if o.MaxLength == 0 {
		o.MaxLength = def.MaxLength
	}
	if o.MaxValue == 0 {
		o.MaxValue = def.MaxValue
	}
	if o.MinLength < MinLength {
		return o, fmt.Errorf("random.minLength must be at least %d, got %d", MinLength, o.MinLength)
	}
	if o.MaxLength < o.MinLength {
		return o, fmt.Errorf("random.maxLength (%d) is below random.minLength (%d)", o.MaxLength, o.MinLength)
	}
	if o.MaxValue < 1 {
		return o, fmt.Errorf("random.maxValue must be positive, got %d", o.MaxValue)
	}
	return o, nil
}

// Random draws a sequence that always passes Validate.
// A nil rng uses the package-level generator.
func Random(rng *rand.Rand, opts RandomOptions) ([]int, error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, err
	}
	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}
	length := opts.MinLength + intN(opts.MaxLength-opts.MinLength+1)
	values := make([]int, length)
	for i := range values {
		values[i] = 1 + intN(opts.MaxValue)
	}
	return values, nil
}

package rotators

import (
	"errors"
	"math/rand/v2"
	"sync"
)

var ErrEmptyCandidateSet = errors.New("pick called with an empty candidate set")

// Picker selects one destination uniformly at random.
//
//go:generate mockgen -source=picker.go -destination=./mocks/picker_mock.go -package=mocks
type Picker interface {
	Pick(urls []string) (string, error)
}

type randomPicker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewPicker uses the runtime's concurrency safe global source.
func NewPicker() Picker {
	return &randomPicker{}
}

// NewSeededPicker returns a deterministic picker, used by tests.
func NewSeededPicker(seed1, seed2 uint64) Picker {
	return &randomPicker{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

func (p *randomPicker) Pick(urls []string) (string, error) {
	if len(urls) == 0 {
		return "", ErrEmptyCandidateSet
	}
	return urls[p.intN(len(urls))], nil
}

func (p *randomPicker) intN(n int) int {
	if p.rng == nil {
		return rand.IntN(n)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.IntN(n)
}

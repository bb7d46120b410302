package harness

import (
	"github.com/roach88/swiss/internal/pairing"
	"github.com/roach88/swiss/internal/store"
)

// Result is the outcome of running one scenario.
type Result struct {
	// Name is the scenario name.
	Name string `json:"name"`

	// Pass is true when every expectation held.
	Pass bool `json:"pass"`

	// Standings are the standings the engine saw.
	Standings []store.Standing `json:"standings"`

	// Pairings is the engine output, empty when it failed.
	Pairings []pairing.Pairing `json:"pairings"`

	// ErrorCode is the engine error code, if any.
	ErrorCode string `json:"error_code,omitempty"`

	// Errors lists failed expectations.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a passing result for the named scenario.
func NewResult(name string) *Result {
	return &Result{
		Name:      name,
		Pass:      true,
		Standings: []store.Standing{},
		Pairings:  []pairing.Pairing{},
		Errors:    []string{},
	}
}

// AddError records a failed expectation and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// PairingNames returns the pairings as [name1, name2] tuples.
func (r *Result) PairingNames() [][2]string {
	names := make([][2]string, len(r.Pairings))
	for i, p := range r.Pairings {
		names[i] = [2]string{p.Name1, p.Name2}
	}
	return names
}

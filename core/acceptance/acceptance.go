// Package acceptance models the courier's decision to take or refuse a
// proposed assignment as an independent Bernoulli draw per proposal. The
// rejection probability is a constant calibrated from historical data and
// the random source is injected, so a fixed seed reproduces the exact
// accept/reject sequence of a previous run.
package acceptance

import (
	"fmt"
	"math/rand"

	"github.com/courierlab/dispatchsim/core/model"
	"github.com/courierlab/dispatchsim/core/simerr"
)

// Model draws accept/reject outcomes for proposals.
type Model struct {
	pReject float64
	rng     *rand.Rand
}

// New returns a model rejecting with probability pReject, seeded for
// reproducibility.
func New(pReject float64, seed int64) (*Model, error) {
	if pReject < 0 || pReject > 1 {
		return nil, fmt.Errorf("acceptance: rejection probability %v outside [0,1]: %w", pReject, simerr.ErrConfiguration)
	}
	return &Model{pReject: pReject, rng: rand.New(rand.NewSource(seed))}, nil
}

// Resolve draws the outcome for one proposal. Bundles resolve with a
// single draw for the whole bundle. The draw direction (reject when the
// uniform sample falls below pReject) matches the calibration runs, so a
// shared seed lines up with historical experiments draw for draw.
func (m *Model) Resolve(model.Proposal) bool {
	return m.rng.Float64() >= m.pReject
}

// RejectionProbability reports the configured constant.
func (m *Model) RejectionProbability() float64 { return m.pReject }

// Package cost defines how a courier/order pairing is scored. Lower is
// better; all implementations must return non-negative values and be
// deterministic for identical inputs so runs are reproducible.
package cost

import (
	"fmt"

	"github.com/courierlab/dispatchsim/core/factory"
	"github.com/courierlab/dispatchsim/core/model"
	"github.com/courierlab/dispatchsim/core/simerr"
)

// Function scores the assignment of a courier at courierPos to an order.
// Implementations must be side-effect free.
type Function interface {
	Cost(courierPos model.Coordinate, order model.Order) float64
	Name() string
	Description() string
}

var registry = factory.NewRegistry[Function]()

// Register adds a cost function factory under the given name.
func Register(name string, f factory.Factory[Function]) error {
	return registry.Register(name, f)
}

// New builds the cost function selected by name.
func New(name string) (Function, error) {
	fn, err := registry.Create(factory.ModuleConfig{Type: name})
	if err != nil {
		return nil, fmt.Errorf("cost function %q: %w", name, simerr.ErrConfiguration)
	}
	return fn, nil
}

func init() {
	if err := Register("distance_to_pickup", func(map[string]any) (Function, error) {
		return DistanceToPickup{}, nil
	}); err != nil {
		panic(err)
	}
}

package tags

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/example/halovoc/internal/storage"
)

// Order maps a parent path (empty string for the root level) to the
// user-chosen display order of its immediate child segment names.
// Entries carry no structural authority: stale names are tolerated and
// simply ignored by the tree builder.
type Order map[string][]string

// loadOrder reads the sibling-order map. A malformed entry is reset to
// its empty form and rewritten.
func (r *Registry) loadOrder(ctx context.Context) (Order, error) {
	raw, ok, err := r.store.Get(ctx, storage.KeyTagOrder)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Order{}, nil
	}
	var order Order
	if err := json.Unmarshal([]byte(raw), &order); err != nil {
		slog.Warn("resetting malformed tag order", "error", err)
		empty := Order{}
		if err := r.saveOrder(ctx, empty); err != nil {
			return nil, err
		}
		return empty, nil
	}
	if order == nil {
		order = Order{}
	}
	return order, nil
}

func (r *Registry) saveOrder(ctx context.Context, order Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to encode tag order: %v", err)
	}
	return r.store.Set(ctx, storage.KeyTagOrder, string(data))
}

// appendOrder records name at the end of parent's order entry unless
// it is already listed.
func appendOrder(order Order, parent, name string) {
	for _, n := range order[parent] {
		if n == name {
			return
		}
	}
	order[parent] = append(order[parent], name)
}

// removeOrder drops name from parent's order entry if present.
func removeOrder(order Order, parent, name string) {
	entry := order[parent]
	for i, n := range entry {
		if n == name {
			order[parent] = append(entry[:i], entry[i+1:]...)
			return
		}
	}
}

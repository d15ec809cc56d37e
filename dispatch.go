package main

import (
	"context"
	"fmt"
	"strings"
)

// Dispatcher resolves tool names and arguments to handler executions. It
// holds no mutable state: the registry is fixed at construction and every
// invocation opens its own database session.
type Dispatcher struct {
	cfg     Config
	adapter DBAdapter
	ops     []OperationDescriptor
	byName  map[string]*OperationDescriptor
}

// NewDispatcher builds the dispatcher and its tool registry. The write tools
// are registered iff the configuration allows writes; that decision is made
// here once and never re-evaluated.
func NewDispatcher(cfg Config, adapter DBAdapter) *Dispatcher {
	d := &Dispatcher{cfg: cfg, adapter: adapter}
	d.ops = d.buildRegistry(!cfg.ReadOnly)
	d.byName = make(map[string]*OperationDescriptor, len(d.ops))
	for i := range d.ops {
		d.byName[d.ops[i].Name] = &d.ops[i]
	}
	return d
}

// Operations returns the registry in registration order.
func (d *Dispatcher) Operations() []OperationDescriptor {
	return d.ops
}

// Names returns the available tool names in registration order.
func (d *Dispatcher) Names() []string {
	names := make([]string, len(d.ops))
	for i, op := range d.ops {
		names[i] = op.Name
	}
	return names
}

// Dispatch executes the named tool. It never fails past this boundary: every
// error becomes the textual payload of a well-formed result, flagged as an
// error, so the transport always has something to frame.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]any) (string, bool) {
	text, err := d.dispatch(ctx, name, args)
	if err != nil {
		return fmt.Sprintf("Error occurred: %v", err), true
	}
	return text, false
}

func (d *Dispatcher) dispatch(ctx context.Context, name string, args map[string]any) (string, error) {
	op, ok := d.byName[name]
	if !ok {
		return "", fmt.Errorf("%w: %q (available: %s)",
			ErrUnknownOperation, name, strings.Join(d.Names(), ", "))
	}

	if args == nil {
		args = map[string]any{}
	}
	for _, param := range op.Required {
		if _, present := args[param]; !present {
			return "", fmt.Errorf("%w: missing required parameter %q for %s",
				ErrInvalidArguments, param, name)
		}
	}

	return op.Handler(ctx, args)
}

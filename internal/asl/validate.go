package asl

import (
	"errors"
	"fmt"
	"sort"
)

// Validate checks the structure of the definition: StartAt names a state,
// every state is terminal or has a Next that exists, Map processors are
// valid themselves, and concurrency is not negative.
func (d *Definition) Validate() error {
	return validateStates("", d.StartAt, d.States)
}

func validateStates(scope, startAt string, states map[string]*State) error {
	var errs []error

	if len(states) == 0 {
		return fmt.Errorf("%sno states", scope)
	}
	if _, ok := states[startAt]; !ok {
		errs = append(errs, fmt.Errorf("%sStartAt %q is not a state", scope, startAt))
	}

	names := make([]string, 0, len(states))
	for name := range states {
		names = append(names, name)
	}
	sort.Strings(names)

	reachable := reachableFrom(startAt, states)

	for _, name := range names {
		state := states[name]
		where := scope + name
		if state == nil {
			errs = append(errs, fmt.Errorf("%s: nil state", where))
			continue
		}

		switch {
		case state.End && state.Next != "":
			errs = append(errs, fmt.Errorf("%s: both End and Next set", where))
		case !state.End && state.Next == "":
			errs = append(errs, fmt.Errorf("%s: neither End nor Next set", where))
		case state.Next != "":
			if _, ok := states[state.Next]; !ok {
				errs = append(errs, fmt.Errorf("%s: Next %q is not a state", where, state.Next))
			}
		}

		if !reachable[name] {
			errs = append(errs, fmt.Errorf("%s: unreachable from StartAt", where))
		}

		switch state.Type {
		case "Task":
			if state.Resource == "" {
				errs = append(errs, fmt.Errorf("%s: Task without Resource", where))
			}
		case "Map":
			if state.ItemProcessor == nil {
				errs = append(errs, fmt.Errorf("%s: Map without ItemProcessor", where))
				break
			}
			if state.MaxConcurrency != nil && *state.MaxConcurrency < 0 {
				errs = append(errs, fmt.Errorf("%s: negative MaxConcurrency %d", where, *state.MaxConcurrency))
			}
			p := state.ItemProcessor
			if err := validateStates(where+".", p.StartAt, p.States); err != nil {
				errs = append(errs, err)
			}
		default:
			errs = append(errs, fmt.Errorf("%s: unsupported state type %q", where, state.Type))
		}
	}

	return errors.Join(errs...)
}

func reachableFrom(start string, states map[string]*State) map[string]bool {
	seen := make(map[string]bool)
	for name := start; name != "" && !seen[name]; {
		state, ok := states[name]
		if !ok {
			break
		}
		seen[name] = true
		if state == nil {
			break
		}
		name = state.Next
	}
	return seen
}

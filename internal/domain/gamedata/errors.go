package gamedata

import "fmt"

// ErrUnknownObject indicates a name that is not present in the registry
type ErrUnknownObject struct {
	Kind string
	Name string
}

func (e *ErrUnknownObject) Error() string {
	return fmt.Sprintf("unknown %s: %s (not in game data)", e.Kind, e.Name)
}

// ErrDuplicateObject indicates two registry entries share a name
type ErrDuplicateObject struct {
	Kind string
	Name string
}

func (e *ErrDuplicateObject) Error() string {
	return fmt.Sprintf("duplicate %s: %s", e.Kind, e.Name)
}

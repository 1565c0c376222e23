package engine

import (
	"fmt"
	"sort"
)

// ScriptFactory creates a Component from the properties given in a scene file.
type ScriptFactory func(props map[string]any) (Component, error)

var scriptRegistry = map[string]ScriptFactory{}

// RegisterScript makes a named script available to scene files.
// Registering the same name twice panics.
func RegisterScript(name string, factory ScriptFactory) {
	if _, exists := scriptRegistry[name]; exists {
		panic(fmt.Sprintf("script %q already registered", name))
	}
	scriptRegistry[name] = factory
}

// CreateScript builds the script registered under name.
func CreateScript(name string, props map[string]any) (Component, error) {
	factory, ok := scriptRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown script %q", name)
	}
	c, err := factory(props)
	if err != nil {
		return nil, fmt.Errorf("script %q: %w", name, err)
	}
	return c, nil
}

// RegisteredScripts returns the sorted names of all registered scripts.
func RegisteredScripts() []string {
	names := make([]string, 0, len(scriptRegistry))
	for name := range scriptRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

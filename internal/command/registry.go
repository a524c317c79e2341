package command

import (
	"fmt"
	"sort"
	"sync"
)

var registry = struct {
	sync.RWMutex
	byName map[string]Command
	names  map[string]string
}{
	byName: make(map[string]Command),
	names:  make(map[string]string),
}

// RegisterCommand adds a command under its name, short name and aliases.
// Registering a taken name panics.
func RegisterCommand(cmd Command) {
	registry.Lock()
	defer registry.Unlock()

	names := append([]string{cmd.Name()}, cmd.Aliases()...)
	if s := cmd.Short(); s != "" {
		names = append(names, s)
	}
	for _, n := range names {
		if owner, ok := registry.names[n]; ok {
			panic(fmt.Sprintf("command: %q of %s (%T) already registered by %s", n, cmd.Name(), Unwrap(cmd), owner))
		}
	}
	for _, n := range names {
		registry.names[n] = cmd.Name()
	}
	registry.byName[cmd.Name()] = cmd
}

// GetCommand returns a command by name, short name or alias.
func GetCommand(name string) (Command, bool) {
	registry.RLock()
	defer registry.RUnlock()

	owner, ok := registry.names[name]
	if !ok {
		return nil, false
	}
	return registry.byName[owner], true
}

// AllCommands returns all registered commands sorted by name.
func AllCommands() []Command {
	registry.RLock()
	defer registry.RUnlock()

	cmds := make([]Command, 0, len(registry.byName))
	for _, c := range registry.byName {
		cmds = append(cmds, c)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name() < cmds[j].Name() })
	return cmds
}

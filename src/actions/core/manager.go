package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
)

// Module is one long-running part of the bot (gateway handlers, HTTP API).
type Module interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context)
}

var (
	// ErrStarted is returned when modules are added or started twice.
	ErrStarted = errors.New("actions: manager already started")
	// ErrDuplicateModule is returned when two modules share a name.
	ErrDuplicateModule = errors.New("actions: duplicate module name")
)

// Manager starts modules in registration order and stops the running ones in
// reverse order.
type Manager struct {
	mu      sync.Mutex
	modules []Module
	running []Module
}

// NewManager creates a manager over mods; nil entries are skipped.
func NewManager(mods ...Module) *Manager {
	m := &Manager{}
	for _, mod := range mods {
		if mod != nil {
			m.modules = append(m.modules, mod)
		}
	}
	return m
}

// Add registers a module. It fails once the manager is running or when the
// name is already taken.
func (m *Manager) Add(mod Module) error {
	if mod == nil {
		return errors.New("actions: nil module")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running != nil {
		return fmt.Errorf("add %s: %w", mod.Name(), ErrStarted)
	}
	for _, existing := range m.modules {
		if existing.Name() == mod.Name() {
			return fmt.Errorf("add %s: %w", mod.Name(), ErrDuplicateModule)
		}
	}
	m.modules = append(m.modules, mod)
	return nil
}

// Names lists registered modules in start order.
func (m *Manager) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.modules))
	for _, mod := range m.modules {
		names = append(names, mod.Name())
	}
	return names
}

// Start starts every module. A failure stops the modules already started and
// leaves the manager stopped.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running != nil {
		return ErrStarted
	}

	running := make([]Module, 0, len(m.modules))
	for _, mod := range m.modules {
		if err := mod.Start(ctx); err != nil {
			log.Printf("actions: module %s failed to start, rolling back %d module(s)", mod.Name(), len(running))
			stopAll(ctx, running)
			return fmt.Errorf("module %s failed: %w", mod.Name(), err)
		}
		log.Printf("actions: module %s started", mod.Name())
		running = append(running, mod)
	}

	m.running = running
	return nil
}

// Stop stops the running modules in reverse order. It is a no-op when nothing
// is running.
func (m *Manager) Stop(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stopAll(ctx, m.running)
	m.running = nil
}

func stopAll(ctx context.Context, mods []Module) {
	for i := len(mods) - 1; i >= 0; i-- {
		mods[i].Stop(ctx)
		log.Printf("actions: module %s stopped", mods[i].Name())
	}
}

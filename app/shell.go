package app

import "sync"

// ShellState is a copy of the shell flags.
type ShellState struct {
	SidebarOpen bool
	SearchOpen  bool
}

// Shell holds transient chrome flags. It is never persisted and starts with
// the sidebar open and the search panel closed.
type Shell struct {
	mu    sync.Mutex
	state ShellState
}

// NewShell returns a shell in its default state.
func NewShell() *Shell {
	return &Shell{state: ShellState{SidebarOpen: true}}
}

// ToggleSidebar flips the sidebar and returns the new value.
func (s *Shell) ToggleSidebar() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SidebarOpen = !s.state.SidebarOpen
	return s.state.SidebarOpen
}

// OpenSearch shows the global search panel.
func (s *Shell) OpenSearch() { s.setSearch(true) }

// CloseSearch hides the global search panel.
func (s *Shell) CloseSearch() { s.setSearch(false) }

func (s *Shell) setSearch(open bool) {
	s.mu.Lock()
	s.state.SearchOpen = open
	s.mu.Unlock()
}

// Snapshot returns the current flags.
func (s *Shell) Snapshot() ShellState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

package constants

// SessionState represents the current state of the TUI application
type SessionState int

const (
	StateHabits SessionState = iota
	StateProgress
	StateAddHabit
	StateConfirmDelete
)

// TabCount is the number of top-level views reachable with tab
const TabCount = 2

package tui

type state int

const (
	episodesState state = iota
	errorState
)

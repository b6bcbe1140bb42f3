package domain

// Asset identifies the single coin the bot tracks.
type Asset struct {
	ID     string // price API id, e.g. "ripple"
	Symbol string
	Name   string
}

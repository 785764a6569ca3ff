package engine

// Progress receives updates while a run works through its bulk phases.
// Step may be called from several goroutines at once.
type Progress interface {
	Start(phase string, total int)
	// Step advances by one; label names the item just handled and may be empty.
	Step(label string)
	Finish()
	// Announce reports a finished milestone such as a rewritten page.
	Announce(message string)
}

// NopProgress discards all progress updates.
type NopProgress struct{}

// Start implements Progress.
func (NopProgress) Start(string, int) {}

// Step implements Progress.
func (NopProgress) Step(string) {}

// Finish implements Progress.
func (NopProgress) Finish() {}

// Announce implements Progress.
func (NopProgress) Announce(string) {}

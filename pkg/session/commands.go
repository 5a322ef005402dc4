package session

// Command is a request handed to the host from another goroutine. Commands
// are applied in order on the Run goroutine.
type Command interface {
	command()
}

// SaveCommand saves the active slot. An empty PrettyName keeps the current
// name. Done, when set, receives the outcome once the slot is persisted.
type SaveCommand struct {
	PrettyName string
	Done       chan<- error
}

// ContinueCommand loads a stored slot and makes it active.
type ContinueCommand struct {
	SlotID int
	Done   chan<- error
}

// NewGameCommand discards the active slot and starts a new one.
type NewGameCommand struct {
	Done chan<- error
}

func (SaveCommand) command()     {}
func (ContinueCommand) command() {}
func (NewGameCommand) command()  {}

func reply(done chan<- error, err error) {
	if done != nil {
		done <- err
	}
}

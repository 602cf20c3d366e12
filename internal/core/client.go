package core

// Client is one transport connection as seen by the core layer.
// Username, Role and Room stay zero until the first successful join and are
// only ever written by the hub run loop.
type Client struct {
	ID       string
	Username string
	Role     Role
	Room     string
	Commands chan *Command
	Events   chan *Event

	// done is closed by the hub on disconnect and stops the command pump.
	done chan struct{}
}

// NewClient constructs a client with initialized channels.
func NewClient(id string) *Client {
	return &Client{
		ID:       id,
		Commands: make(chan *Command, 8),
		Events:   make(chan *Event, 8),
		done:     make(chan struct{}),
	}
}

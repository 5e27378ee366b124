package redis

// NewWithCmdable builds a Client over an arbitrary command surface, such as
// an in-memory fake.
func NewWithCmdable(store cmdable) *Client {
	return &Client{store: store}
}

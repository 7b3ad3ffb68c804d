package chat

// Event is the slice of an event record the chat surfaces need: enough to
// pick a thread and title the header.
type Event struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

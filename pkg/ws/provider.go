// Package ws holds the websocket provider the platform exposes alongside
// the REST API. It fans parsed JSON frames out to registered listeners.
// The chat flow does not consume it; it exists as the integration hook for
// a future push design and currently only carries the server's delete
// broadcast.
package ws

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
)

// Frame is one parsed JSON message from the socket.
type Frame map[string]interface{}

// Listener receives every frame the provider reads.
type Listener func(Frame)

// Provider owns a single websocket connection and a listener registry.
type Provider struct {
	conn *websocket.Conn

	mu        sync.RWMutex
	listeners map[string]Listener
	closed    bool
}

// Connect dials the endpoint and starts reading frames. Unparseable
// frames are dropped; a read error ends the loop and marks the provider
// disconnected. There is no reconnect logic.
func Connect(endpoint string) (*Provider, error) {
	conn, _, err := websocket.DefaultDialer.Dial(endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("could not connect to %s: %w", endpoint, err)
	}

	p := &Provider{
		conn:      conn,
		listeners: make(map[string]Listener),
	}
	go p.readLoop()
	return p, nil
}

func (p *Provider) readLoop() {
	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			p.mu.Lock()
			p.closed = true
			p.mu.Unlock()
			return
		}

		var frame Frame
		if err := json.Unmarshal(data, &frame); err != nil {
			continue
		}
		p.dispatch(frame)
	}
}

func (p *Provider) dispatch(frame Frame) {
	p.mu.RLock()
	snapshot := make([]Listener, 0, len(p.listeners))
	for _, listener := range p.listeners {
		snapshot = append(snapshot, listener)
	}
	p.mu.RUnlock()

	for _, listener := range snapshot {
		listener(frame)
	}
}

// AddListener registers a callback under an id, replacing any previous
// listener with the same id.
func (p *Provider) AddListener(id string, listener Listener) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners[id] = listener
}

// RemoveListener drops the callback registered under id.
func (p *Provider) RemoveListener(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.listeners, id)
}

// Connected reports whether the read loop is still running.
func (p *Provider) Connected() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return !p.closed
}

// Close shuts the connection down.
func (p *Provider) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return p.conn.Close()
}

package debug

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "debug",
})

const (
	socketBufferSize  = 1024
	messageBufferSize = 16
	writeWait         = 1 * time.Second
)

var upgrader = &websocket.Upgrader{
	ReadBufferSize:  socketBufferSize,
	WriteBufferSize: socketBufferSize,
}

// Frame is a single message sent to viewers: the markers emitted during one
// tick.
type Frame struct {
	Tick    int      `json:"tick"`
	Markers []Marker `json:"markers"`
}

// Room streams frames to every connected websocket client. Slow clients miss
// frames rather than holding up the controllers.
type Room struct {
	forward chan []byte
	join    chan *client
	leave   chan *client
	done    chan struct{}

	mu      sync.RWMutex
	clients map[*client]bool
}

type client struct {
	socket *websocket.Conn
	send   chan []byte
}

func NewRoom() *Room {
	return &Room{
		forward: make(chan []byte, messageBufferSize),
		join:    make(chan *client),
		leave:   make(chan *client),
		done:    make(chan struct{}),
		clients: make(map[*client]bool),
	}
}

// Run forwards frames to clients until the context is canceled, at which point
// every client is disconnected. It must only be called once.
func (r *Room) Run(ctx context.Context) {
	defer func() {
		close(r.done)
		r.mu.Lock()
		for c := range r.clients {
			delete(r.clients, c)
			close(c.send)
		}
		r.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case c := <-r.join:
			r.mu.Lock()
			r.clients[c] = true
			r.mu.Unlock()
			log.Debugf("client joined")

		case c := <-r.leave:
			r.mu.Lock()
			if r.clients[c] {
				delete(r.clients, c)
				close(c.send)
			}
			r.mu.Unlock()
			log.Debugf("client left")

		case msg := <-r.forward:
			r.mu.RLock()
			for c := range r.clients {
				select {
				case c.send <- msg:
				default:
					log.Debugf("dropped frame for slow client")
				}
			}
			r.mu.RUnlock()
		}
	}
}

// Publish encodes a frame and queues it for every client. If the queue is
// full, the frame is dropped.
func (r *Room) Publish(f Frame) error {
	msg, err := json.Marshal(f)
	if err != nil {
		return errors.Wrap(err, "error while encoding frame")
	}

	select {
	case r.forward <- msg:
	default:
		log.Debugf("dropped frame %d", f.Tick)
	}

	return nil
}

// Clients returns the number of connected clients.
func (r *Room) Clients() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

func (r *Room) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	socket, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		log.Warnf("error while upgrading connection: %s", err)
		return
	}

	c := &client{
		socket: socket,
		send:   make(chan []byte, messageBufferSize),
	}

	select {
	case r.join <- c:
	case <-r.done:
		socket.Close()
		return
	}

	go c.write()
	c.read()

	select {
	case r.leave <- c:
	case <-r.done:
	}
}

// read discards everything sent by the client, until it disconnects.
func (c *client) read() {
	defer c.socket.Close()
	for {
		if _, _, err := c.socket.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) write() {
	defer c.socket.Close()
	for msg := range c.send {
		c.socket.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.socket.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}

	c.socket.WriteMessage(websocket.CloseMessage, []byte{})
}

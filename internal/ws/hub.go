package ws

import (
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2/log"
)

// Hub tracks connected clients and fans event frames out to all of them.
// A client whose write fails is dropped.
type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte

	mutex sync.Mutex
	stop  chan struct{}
	done  chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte, 64),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Run serves registrations and broadcasts until Stop is called.
func (h *Hub) Run() {
	defer close(h.done)
	for {
		select {
		case conn := <-h.Register:
			n := h.add(conn)
			log.Infof("ws: client connected (%d online)", n)

		case conn := <-h.Unregister:
			h.remove(conn)

		case message := <-h.Broadcast:
			h.send(message)

		case <-h.stop:
			h.closeAll()
			return
		}
	}
}

// Stop disconnects every client and waits for Run to return.
func (h *Hub) Stop() {
	select {
	case <-h.stop:
	default:
		close(h.stop)
	}
	<-h.done
}

// Done is closed once Run has returned.
func (h *Hub) Done() <-chan struct{} { return h.done }

func (h *Hub) add(conn *websocket.Conn) int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.Clients[conn] = true
	return len(h.Clients)
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.Clients[conn]; ok {
		delete(h.Clients, conn)
		conn.Close()
	}
}

func (h *Hub) send(message []byte) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for conn := range h.Clients {
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Warnf("ws: dropping client: %v", err)
			conn.Close()
			delete(h.Clients, conn)
		}
	}
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for conn := range h.Clients {
		conn.Close()
		delete(h.Clients, conn)
	}
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.Clients)
}

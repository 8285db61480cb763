package pipeline

import (
	"bytes"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"

	"github.com/dreamware/graphpipe/internal/wire"
)

// ClientHandle is the write side of one client connection.
// The handler goroutine that created it owns the read side; only the
// dispatcher writes through it.
type ClientHandle struct {
	conn      net.Conn
	closeOnce sync.Once
	ID        uuid.UUID
}

func newClientHandle(conn net.Conn) *ClientHandle {
	return &ClientHandle{ID: uuid.New(), conn: conn}
}

// RemoteAddr returns the peer address for logging.
func (h *ClientHandle) RemoteAddr() string {
	return h.conn.RemoteAddr().String()
}

// WriteResult writes one framed payload. A positive timeout sets a write
// deadline for the frame.
func (h *ClientHandle) WriteResult(payload []byte, timeout time.Duration) error {
	if timeout > 0 {
		if err := h.conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
			return err
		}
	}
	return wire.WriteResult(h.conn, payload)
}

// Close closes the connection. Only the first call has any effect.
func (h *ClientHandle) Close() error {
	var err error
	h.closeOnce.Do(func() {
		err = h.conn.Close()
	})
	return err
}

// connTable maps connection addresses to live handles.
// Once closeAll has run it refuses new handles.
type connTable struct {
	conns  map[uuid.UUID]*ClientHandle
	mu     sync.Mutex
	closed bool
}

func newConnTable() *connTable {
	return &connTable{conns: make(map[uuid.UUID]*ClientHandle)}
}

// add registers h. It returns false when the table has been closed.
func (t *connTable) add(h *ClientHandle) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return false
	}
	t.conns[h.ID] = h
	return true
}

func (t *connTable) get(id uuid.UUID) (*ClientHandle, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	h, ok := t.conns[id]
	return h, ok
}

// remove unregisters id and reports whether it was present.
func (t *connTable) remove(id uuid.UUID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.conns[id]; !ok {
		return false
	}
	delete(t.conns, id)
	return true
}

// snapshot returns the registered handles ordered by address.
func (t *connTable) snapshot() []*ClientHandle {
	t.mu.Lock()
	handles := make([]*ClientHandle, 0, len(t.conns))
	for _, h := range t.conns {
		handles = append(handles, h)
	}
	t.mu.Unlock()

	slices.SortFunc(handles, func(a, b *ClientHandle) int {
		return bytes.Compare(a.ID[:], b.ID[:])
	})
	return handles
}

// closeAll closes the table and every registered connection. Sockets are
// closed outside the lock. It returns the number of connections closed.
func (t *connTable) closeAll() int {
	t.mu.Lock()
	t.closed = true
	handles := make([]*ClientHandle, 0, len(t.conns))
	for id, h := range t.conns {
		handles = append(handles, h)
		delete(t.conns, id)
	}
	t.mu.Unlock()

	for _, h := range handles {
		_ = h.Close()
	}
	return len(handles)
}

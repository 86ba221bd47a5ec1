package cart

import "sync"

// hub holds the per-session state shared by every Store handle of a session:
// the mutation lock and the subscriber list. Entries exist only while a
// session has a mutation in flight or a live subscriber.
type hub struct {
	mu        sync.Mutex
	locks     map[string]*sessionLock
	subs      map[string][]subscription
	nextID    int
	broadcast Listener
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

type subscription struct {
	id int
	fn Listener
}

func newHub() *hub {
	return &hub{
		locks: make(map[string]*sessionLock),
		subs:  make(map[string][]subscription),
	}
}

// lock serializes work on sessionID and returns the matching unlock
func (h *hub) lock(sessionID string) func() {
	h.mu.Lock()
	l, ok := h.locks[sessionID]
	if !ok {
		l = &sessionLock{}
		h.locks[sessionID] = l
	}
	l.refs++
	h.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		h.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(h.locks, sessionID)
		}
		h.mu.Unlock()
	}
}

func (h *hub) subscribe(sessionID string, fn Listener) func() {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[sessionID] = append(h.subs[sessionID], subscription{id: id, fn: fn})
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			subs := h.subs[sessionID]
			for i, sub := range subs {
				if sub.id == id {
					subs = append(subs[:i:i], subs[i+1:]...)
					break
				}
			}
			if len(subs) == 0 {
				delete(h.subs, sessionID)
			} else {
				h.subs[sessionID] = subs
			}
		})
	}
}

func (h *hub) subscribers(sessionID string) []subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]subscription(nil), h.subs[sessionID]...)
}

// tracked reports how many sessions currently hold hub state
func (h *hub) tracked() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	seen := make(map[string]struct{}, len(h.locks)+len(h.subs))
	for id := range h.locks {
		seen[id] = struct{}{}
	}
	for id := range h.subs {
		seen[id] = struct{}{}
	}
	return len(seen)
}

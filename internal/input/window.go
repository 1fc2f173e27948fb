// Package input routes raw pointer input to the nodes of committed views
// and to window-level listeners.
package input

// ListenerID identifies a registered window listener.
type ListenerID uint64

// Window is the top-level event target shared by every view on one screen.
// Listeners added here hear every pointer release, wherever it happens.
type Window struct {
	nextID    ListenerID
	order     []ListenerID
	listeners map[ListenerID]func()
}

// NewWindow creates a window with no listeners.
func NewWindow() *Window {
	return &Window{listeners: make(map[ListenerID]func())}
}

// AddReleaseListener registers fn to run on every pointer release.
func (w *Window) AddReleaseListener(fn func()) ListenerID {
	w.nextID++
	id := w.nextID
	w.listeners[id] = fn
	w.order = append(w.order, id)
	return id
}

// RemoveReleaseListener unregisters a listener. It reports false when id is
// not registered, including when it was already removed.
func (w *Window) RemoveReleaseListener(id ListenerID) bool {
	if _, ok := w.listeners[id]; !ok {
		return false
	}
	delete(w.listeners, id)
	for i, o := range w.order {
		if o == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	return true
}

// ListenerCount returns the number of registered release listeners.
func (w *Window) ListenerCount() int {
	return len(w.listeners)
}

// Release notifies listeners of a pointer release in registration order.
// A listener removed by an earlier one during the same release is skipped.
func (w *Window) Release() {
	ids := append([]ListenerID(nil), w.order...)
	for _, id := range ids {
		if fn, ok := w.listeners[id]; ok {
			fn()
		}
	}
}

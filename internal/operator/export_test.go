package operator

// Stopped is closed when the reader goroutine has returned.
func (t *Terminal) Stopped() <-chan struct{} {
	return t.stopped
}

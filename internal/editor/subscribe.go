package editor

// Subscribe returns a channel that receives the latest revision after each
// mutation. Slow readers only ever see the most recent revision. Call cancel
// to stop receiving and release the channel.
func (e *Editor) Subscribe() (<-chan uint64, func()) {
	ch := make(chan uint64, 1)

	e.subMu.Lock()
	id := e.nextSub
	e.nextSub++
	e.subs[id] = ch
	e.subMu.Unlock()

	cancel := func() {
		e.subMu.Lock()
		defer e.subMu.Unlock()
		if _, ok := e.subs[id]; ok {
			delete(e.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

func (e *Editor) publish(rev uint64) {
	e.subMu.Lock()
	defer e.subMu.Unlock()

	for _, ch := range e.subs {
		select {
		case ch <- rev:
		default:
			// Drop the stale value and replace it with the newest one.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- rev:
			default:
			}
		}
	}
}

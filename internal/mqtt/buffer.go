package mqtt

import "log"

// queuedMsg holds a serialized message waiting for the broker to come back.
type queuedMsg struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

// msgQueue is a fixed-capacity FIFO for messages that could not be sent
// while the broker was unreachable. When full, the oldest message is
// dropped. Not safe for concurrent use — caller must synchronize.
type msgQueue struct {
	buf     []queuedMsg
	head    int // oldest queued message
	count   int
	dropped bool // true if any message was dropped since last drain
}

func newMsgQueue(capacity int) *msgQueue {
	return &msgQueue{buf: make([]queuedMsg, capacity)}
}

func (q *msgQueue) push(msg queuedMsg) {
	if q.count == len(q.buf) {
		if !q.dropped {
			log.Printf("mqtt: queue full (%d messages), dropping oldest", len(q.buf))
			q.dropped = true
		}
		q.buf[q.head] = msg
		q.head = (q.head + 1) % len(q.buf)
		return
	}
	q.buf[(q.head+q.count)%len(q.buf)] = msg
	q.count++
}

// drainAll returns the queued messages oldest-first and empties the queue.
func (q *msgQueue) drainAll() []queuedMsg {
	if q.count == 0 {
		return nil
	}

	out := make([]queuedMsg, q.count)
	for i := range out {
		out[i] = q.buf[(q.head+i)%len(q.buf)]
	}

	q.head = 0
	q.count = 0
	q.dropped = false
	return out
}

func (q *msgQueue) len() int {
	return q.count
}

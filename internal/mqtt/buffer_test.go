package mqtt

import (
	"fmt"
	"testing"
)

func TestMsgQueueEmpty(t *testing.T) {
	q := newMsgQueue(10)
	if q.len() != 0 {
		t.Errorf("expected empty queue, got len %d", q.len())
	}
	if msgs := q.drainAll(); msgs != nil {
		t.Errorf("expected nil drain on empty queue, got %d messages", len(msgs))
	}
}

func TestMsgQueuePushDrain(t *testing.T) {
	q := newMsgQueue(10)

	q.push(queuedMsg{topic: "a", payload: []byte("1")})
	q.push(queuedMsg{topic: "b", payload: []byte("2")})
	q.push(queuedMsg{topic: "c", payload: []byte("3")})

	if q.len() != 3 {
		t.Fatalf("expected len 3, got %d", q.len())
	}

	msgs := q.drainAll()
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	for i, want := range []string{"a", "b", "c"} {
		if msgs[i].topic != want {
			t.Errorf("message %d: got topic %q, want %q", i, msgs[i].topic, want)
		}
	}

	if q.len() != 0 {
		t.Errorf("expected empty queue after drain, got len %d", q.len())
	}
}

func TestMsgQueueOverflowDropsOldest(t *testing.T) {
	const cap = 5
	q := newMsgQueue(cap)

	for i := 0; i < cap+3; i++ {
		q.push(queuedMsg{topic: fmt.Sprintf("t%d", i)})
	}

	if q.len() != cap {
		t.Fatalf("expected len %d after overflow, got %d", cap, q.len())
	}

	msgs := q.drainAll()
	// Oldest 3 dropped: expect t3..t7
	for i, m := range msgs {
		want := fmt.Sprintf("t%d", i+3)
		if m.topic != want {
			t.Errorf("message %d: got topic %q, want %q", i, m.topic, want)
		}
	}
}

func TestMsgQueueReuseAfterDrain(t *testing.T) {
	q := newMsgQueue(3)

	q.push(queuedMsg{topic: "a"})
	q.push(queuedMsg{topic: "b"})
	q.drainAll()

	q.push(queuedMsg{topic: "c"})
	msgs := q.drainAll()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if msgs[0].topic != "c" {
		t.Errorf("got topic %q, want c", msgs[0].topic)
	}
}

func TestMsgQueueWrapAround(t *testing.T) {
	q := newMsgQueue(4)

	// Fill, overflow twice so head wraps, then drain
	for i := 0; i < 6; i++ {
		q.push(queuedMsg{topic: fmt.Sprintf("t%d", i)})
	}

	msgs := q.drainAll()
	if len(msgs) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(msgs))
	}
	for i, m := range msgs {
		want := fmt.Sprintf("t%d", i+2)
		if m.topic != want {
			t.Errorf("message %d: got topic %q, want %q", i, m.topic, want)
		}
	}
}

func TestMsgQueuePreservesFields(t *testing.T) {
	q := newMsgQueue(2)
	q.push(queuedMsg{topic: "sys", payload: []byte("x"), qos: 1, retained: true})

	msgs := q.drainAll()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	m := msgs[0]
	if m.topic != "sys" || string(m.payload) != "x" || m.qos != 1 || !m.retained {
		t.Errorf("fields not preserved: %+v", m)
	}
}

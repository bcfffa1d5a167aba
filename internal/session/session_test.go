package session

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestDrainReturnsFIFO(t *testing.T) {
	s := newSession("s1", "p1", nil)

	for i := 0; i < 10; i++ {
		s.Enqueue(Command{ID: fmt.Sprintf("cmd-%d", i), Type: CommandRunLua})
	}

	drained := s.Drain()
	if len(drained) != 10 {
		t.Fatalf("expected 10 commands, got %d", len(drained))
	}
	for i, cmd := range drained {
		want := fmt.Sprintf("cmd-%d", i)
		if cmd.ID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, cmd.ID)
		}
	}
}

func TestDrainEmptyMailbox(t *testing.T) {
	s := newSession("s1", "p1", nil)

	drained := s.Drain()
	if drained == nil {
		t.Error("drain of empty mailbox should return empty slice, not nil")
	}
	if len(drained) != 0 {
		t.Errorf("expected 0 commands, got %d", len(drained))
	}

	// Second drain with no intervening enqueue is also empty
	s.Enqueue(Command{ID: "c1"})
	s.Drain()
	if got := s.Drain(); len(got) != 0 {
		t.Errorf("second drain returned %d commands, want 0", len(got))
	}
}

func TestConcurrentEnqueueDrainNoLossNoDuplicate(t *testing.T) {
	s := newSession("s1", "p1", nil)

	const writers = 8
	const perWriter = 200

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				s.Enqueue(Command{ID: fmt.Sprintf("w%d-%d", w, i)})
			}
		}(w)
	}

	// Drain concurrently while writers run
	seen := make(map[string]int)
	done := make(chan struct{})
	go func() {
		defer close(done)
		deadline := time.After(5 * time.Second)
		for len(seen) < writers*perWriter {
			select {
			case <-deadline:
				return
			default:
			}
			for _, cmd := range s.Drain() {
				seen[cmd.ID]++
			}
		}
	}()

	wg.Wait()
	<-done

	if len(seen) != writers*perWriter {
		t.Fatalf("expected %d unique commands, got %d", writers*perWriter, len(seen))
	}
	for id, count := range seen {
		if count != 1 {
			t.Errorf("command %s delivered %d times", id, count)
		}
	}
}

func TestPerWriterOrderPreserved(t *testing.T) {
	s := newSession("s1", "p1", nil)

	const perWriter = 500
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				s.Enqueue(Command{ID: fmt.Sprintf("w%d-%d", w, i), Payload: map[string]any{"seq": i, "writer": w}})
			}
		}(w)
	}
	wg.Wait()

	drained := s.Drain()
	lastSeq := map[int]int{0: -1, 1: -1, 2: -1, 3: -1}
	for _, cmd := range drained {
		w := cmd.Payload["writer"].(int)
		seq := cmd.Payload["seq"].(int)
		if seq <= lastSeq[w] {
			t.Fatalf("writer %d: seq %d delivered after seq %d", w, seq, lastSeq[w])
		}
		lastSeq[w] = seq
	}
}

func TestWakeSignalsOnEnqueue(t *testing.T) {
	s := newSession("s1", "p1", nil)

	select {
	case <-s.Wake():
		t.Fatal("wake channel should be empty before any enqueue")
	default:
	}

	s.Enqueue(Command{ID: "c1"})

	select {
	case <-s.Wake():
	case <-time.After(time.Second):
		t.Fatal("expected wake signal after enqueue")
	}
}

func TestPending(t *testing.T) {
	s := newSession("s1", "p1", nil)
	if s.Pending() != 0 {
		t.Errorf("expected 0 pending, got %d", s.Pending())
	}
	s.Enqueue(Command{ID: "c1"})
	s.Enqueue(Command{ID: "c2"})
	if s.Pending() != 2 {
		t.Errorf("expected 2 pending, got %d", s.Pending())
	}
	s.Drain()
	if s.Pending() != 0 {
		t.Errorf("expected 0 pending after drain, got %d", s.Pending())
	}
}

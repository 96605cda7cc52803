package sound

import (
	"bytes"
	"errors"
	"sync"
	"testing"
	"time"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestFail_RingsBellOffDarwin(t *testing.T) {
	var bell syncBuffer
	p := New(&bell, nil)
	p.goos = "linux"

	p.Fail()
	if bell.String() != "\a" {
		t.Errorf("bell output = %q, want BEL", bell.String())
	}
}

func TestFail_DarwinPlaysFunk(t *testing.T) {
	var bell syncBuffer
	played := make(chan []string, 1)

	p := New(&bell, nil)
	p.goos = "darwin"
	p.run = func(name string, args ...string) error {
		played <- append([]string{name}, args...)
		return nil
	}

	p.Fail()
	select {
	case got := <-played:
		if got[0] != "afplay" || got[1] != funkSound {
			t.Errorf("ran %v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("afplay not run")
	}
	if bell.String() != "" {
		t.Error("bell should not ring when afplay succeeds")
	}
}

func TestFail_DarwinFallsBackToBell(t *testing.T) {
	var bell syncBuffer
	done := make(chan struct{})

	p := New(&bell, nil)
	p.goos = "darwin"
	p.run = func(string, ...string) error {
		defer close(done)
		return errors.New("no afplay")
	}

	p.Fail()
	<-done
	deadline := time.Now().Add(2 * time.Second)
	for bell.String() == "" && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if bell.String() != "\a" {
		t.Errorf("bell output = %q, want BEL", bell.String())
	}
}

func TestFail_NilBell(t *testing.T) {
	p := New(nil, nil)
	p.goos = "linux"
	p.Fail()
}

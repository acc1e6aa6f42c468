package dispatcher

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

// testLogger implements Logger for testing
type testLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *testLogger) Debug(msg string, keysAndValues ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf("DEBUG: %s %v", msg, keysAndValues))
}

func (l *testLogger) Info(msg string, keysAndValues ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf("INFO: %s %v", msg, keysAndValues))
}

func (l *testLogger) Error(msg string, keysAndValues ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf("ERROR: %s %v", msg, keysAndValues))
}

func newTestDispatcher(t *testing.T) (*Dispatcher, *testLogger) {
	logger := &testLogger{}

	d, err := New(logger)
	if err != nil {
		t.Fatalf("failed to create dispatcher: %v", err)
	}

	return d, logger
}

func TestDispatcher_SyncHandler(t *testing.T) {
	d, _ := newTestDispatcher(t)

	called := false
	d.Register(":TEST:", func(e Event) (any, error) {
		called = true
		return "result", nil
	})

	result, err := d.Dispatch(Event{Command: ":TEST:", Args: []string{"arg1"}})

	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !called {
		t.Error("handler was not called")
	}
	if result != "result" {
		t.Errorf("expected 'result', got %v", result)
	}
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	d, _ := newTestDispatcher(t)

	_, err := d.Dispatch(Event{Command: ":UNKNOWN:"})

	if !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("expected ErrUnknownCommand, got %v", err)
	}
}

func TestDispatcher_StampsMissingTimestamp(t *testing.T) {
	d, _ := newTestDispatcher(t)

	var got Event
	d.Register(":MARKER:DRAG:", func(e Event) (any, error) {
		got = e
		return nil, nil
	})

	before := time.Now()
	if _, err := d.Dispatch(Event{Command: ":MARKER:DRAG:"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Timestamp.Before(before) {
		t.Errorf("expected timestamp at or after %v, got %v", before, got.Timestamp)
	}

	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	if _, err := d.Dispatch(Event{Command: ":MARKER:DRAG:", Timestamp: at}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Timestamp.Equal(at) {
		t.Errorf("expected timestamp %v kept, got %v", at, got.Timestamp)
	}
}

func TestDispatcher_RunsOnCallerGoroutine(t *testing.T) {
	d, _ := newTestDispatcher(t)

	var order []string
	d.Register(":MARKER:ADD:", func(e Event) (any, error) {
		order = append(order, e.Args[0])
		return nil, nil
	})

	for _, arg := range []string{"1,1", "2,2", "3,3"} {
		if _, err := d.Dispatch(Event{Command: ":MARKER:ADD:", Args: []string{arg}}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	// No waiting: every handler has already returned.
	if len(order) != 3 || order[0] != "1,1" || order[2] != "3,3" {
		t.Errorf("expected events in dispatch order, got %v", order)
	}
}

func TestDispatcher_HandlerError(t *testing.T) {
	d, _ := newTestDispatcher(t)

	sentinel := errors.New("no active shape")
	d.Register(":HOLE:START:", func(e Event) (any, error) {
		return nil, sentinel
	})

	_, err := d.Dispatch(Event{Command: ":HOLE:START:"})

	if !errors.Is(err, sentinel) {
		t.Errorf("expected handler error to pass through, got %v", err)
	}
}

func TestDispatcher_RegisterReplaces(t *testing.T) {
	d, _ := newTestDispatcher(t)

	d.Register(":SHAPE:SELECT:", func(e Event) (any, error) { return "first", nil })
	d.Register(":SHAPE:SELECT:", func(e Event) (any, error) { return "second", nil })

	result, _ := d.Dispatch(Event{Command: ":SHAPE:SELECT:"})

	if result != "second" {
		t.Errorf("expected 'second', got %v", result)
	}
}

func TestDispatcher_LoggedHandler(t *testing.T) {
	d, logger := newTestDispatcher(t)

	d.Register(":LOGGED:", func(e Event) (any, error) {
		return "ok", nil
	}, Logged())

	d.Dispatch(Event{Command: ":LOGGED:", Args: []string{"a", "b"}})

	logger.mu.Lock()
	defer logger.mu.Unlock()

	if len(logger.messages) < 2 {
		t.Errorf("expected at least 2 log messages, got %d", len(logger.messages))
	}
}

func TestDispatcher_LoggedHandlerError(t *testing.T) {
	d, logger := newTestDispatcher(t)

	d.Register(":ERROR:", func(e Event) (any, error) {
		return nil, fmt.Errorf("test error")
	}, Logged())

	d.Dispatch(Event{Command: ":ERROR:"})

	logger.mu.Lock()
	defer logger.mu.Unlock()

	hasError := false
	for _, msg := range logger.messages {
		if len(msg) >= 5 && msg[:5] == "ERROR" {
			hasError = true
			break
		}
	}

	if !hasError {
		t.Error("expected error log message")
	}
}

func TestDispatcher_HasHandler(t *testing.T) {
	d, _ := newTestDispatcher(t)

	d.Register(":EXISTS:", func(e Event) (any, error) { return nil, nil })

	if !d.HasHandler(":EXISTS:") {
		t.Error("expected handler to exist")
	}

	if d.HasHandler(":NOT_EXISTS:") {
		t.Error("expected handler to not exist")
	}
}

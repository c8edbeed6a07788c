package transports

import (
	"io"
	"sync"
	"time"
)

// MockTransport implements Transport for testing. It behaves like a
// scriptable DWM1001: each exact write can be stubbed with a canned
// reply that becomes readable afterwards, the way the firmware shell
// echoes a command and then prints its output and prompt.
type MockTransport struct {
	mu sync.Mutex

	// Written accumulates everything the session transmitted.
	Written []byte
	// WriteErr, when set, fails every Write.
	WriteErr error
	// ReadErr, when set, fails every Read.
	ReadErr error

	Closed      bool
	Flushed     bool
	ReadTimeout time.Duration

	stubs   map[string]string
	pending []byte
}

// Stub registers a canned reply for an exact write payload.
func (m *MockTransport) Stub(receive, reply string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stubs == nil {
		m.stubs = make(map[string]string)
	}
	m.stubs[receive] = reply
}

// Preload queues bytes to be read without any write having to occur,
// e.g. an unsolicited stream of CSV position reports.
func (m *MockTransport) Preload(data string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, data...)
}

func (m *MockTransport) Read(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ReadErr != nil {
		return 0, m.ReadErr
	}
	if len(m.pending) == 0 {
		// Nothing buffered: report EOF so the session treats this
		// as "no data yet" and keeps polling until its deadline.
		return 0, io.EOF
	}
	n := copy(p, m.pending)
	m.pending = m.pending[n:]
	return n, nil
}

func (m *MockTransport) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.WriteErr != nil {
		return 0, m.WriteErr
	}
	m.Written = append(m.Written, p...)
	if reply, ok := m.stubs[string(p)]; ok {
		m.pending = append(m.pending, reply...)
	}
	return len(p), nil
}

func (m *MockTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}

func (m *MockTransport) SetReadTimeout(timeout time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReadTimeout = timeout
	return nil
}

func (m *MockTransport) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Flushed = true
	m.pending = nil
	return nil
}

package dashboard

import (
	"context"
	"sync"
	"testing"

	"go.uber.org/goleak"

	"github.com/trezcool/alumni/core"
	"github.com/trezcool/alumni/core/alumni"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var (
	ada   = alumni.Record{ID: "1", FirstName: "Ada", LastName: "Lovelace", EmailAddress: "ada@test.cd", GraduatedYear: "1990", LocationOrCountry: "London, UK"}
	alan  = alumni.Record{ID: "2", FirstName: "Alan", LastName: "Turing", EmailAddress: "alan@test.cd", GraduatedYear: "1991"}
	grace = alumni.Record{ID: "3", FirstName: "Grace", LastName: "Hopper", EmailAddress: "grace@test.cd", GraduatedYear: "1934"}
	john  = alumni.Record{ID: "4", FirstName: "John", LastName: "Doe", GraduatedYear: "2001"}
)

// fakeClient is a Client serving records from memory.
// When gate is set, FetchRecords blocks until it is closed or the context is done.
type fakeClient struct {
	mu        sync.Mutex
	records   []alumni.Record
	fetchErr  error
	submitErr error
	resetErr  error
	gate      chan struct{}
	fetching  chan struct{} // receives once per FetchRecords call, if set
	submitted []alumni.NewRecord
	resets    []string
}

func (c *fakeClient) FetchRecords(ctx context.Context) ([]alumni.Record, error) {
	c.mu.Lock()
	gate, fetching := c.gate, c.fetching
	c.mu.Unlock()

	if fetching != nil {
		fetching <- struct{}{}
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fetchErr != nil {
		return nil, c.fetchErr
	}
	return append([]alumni.Record(nil), c.records...), nil
}

func (c *fakeClient) SubmitRecord(_ context.Context, nr alumni.NewRecord) (alumni.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitted = append(c.submitted, nr)
	if c.submitErr != nil {
		return alumni.Record{}, c.submitErr
	}
	return alumni.Record{ID: "new", FirstName: nr.FirstName}, nil
}

func (c *fakeClient) RequestPasswordReset(_ context.Context, email string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resets = append(c.resets, email)
	return c.resetErr
}

func (c *fakeClient) set(fn func(c *fakeClient)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c)
}

// recordingLogger counts the logged errors.
type recordingLogger struct {
	mu     sync.Mutex
	errors []string
}

var _ core.Logger = (*recordingLogger)(nil)

func (l *recordingLogger) Debug(string, ...interface{}) {}
func (l *recordingLogger) Info(string, ...interface{})  {}
func (l *recordingLogger) Warn(string, ...interface{})  {}
func (l *recordingLogger) Error(msg string, _ ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}
func (l *recordingLogger) Fatal(msg string, args ...interface{}) { l.Error(msg, args...) }

func (l *recordingLogger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.errors)
}

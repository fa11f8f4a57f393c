package dashboard

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/alumni/core"
	"github.com/trezcool/alumni/core/alumni"
)

var (
	// errors
	ErrUnknownField = errors.New("dashboard: unknown field")
	ErrInvalid      = errors.New("dashboard: invalid submission")
)

// SubmissionForm is the alumni submission form. Validation is left to the Record Store.
type SubmissionForm struct {
	client Client
	logger core.Logger

	mu          sync.RWMutex
	payload     alumni.NewRecord
	fieldErrors map[string]string
	err         error
	ack         bool
	submitting  bool
}

func NewSubmissionForm(client Client, logger core.Logger) *SubmissionForm {
	return &SubmissionForm{client: client, logger: logger}
}

// field returns the payload field named after its json name.
func field(nr *alumni.NewRecord, name string) (*string, bool) {
	switch name {
	case "firstName":
		return &nr.FirstName, true
	case "lastName":
		return &nr.LastName, true
	case "middleName":
		return &nr.MiddleName, true
	case "emailAddress":
		return &nr.EmailAddress, true
	case "phoneNumber":
		return &nr.PhoneNumber, true
	case "graduatedYear":
		return &nr.GraduatedYear, true
	case "previousJob":
		return &nr.PreviousJob, true
	case "currentJob":
		return &nr.CurrentJob, true
	case "locationOrCountry":
		return &nr.LocationOrCountry, true
	case "supervisor":
		return &nr.Supervisor, true
	case "advice":
		return &nr.Advice, true
	case "social":
		return &nr.Social, true
	}
	return nil, false
}

// Set sets a payload field by its json name, eg. "emailAddress".
func (f *SubmissionForm) Set(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ptr, ok := field(&f.payload, name)
	if !ok {
		return errors.Wrap(ErrUnknownField, name)
	}
	*ptr = value
	return nil
}

func (f *SubmissionForm) Get(name string) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if ptr, ok := field(&f.payload, name); ok {
		return *ptr
	}
	return ""
}

func (f *SubmissionForm) Payload() alumni.NewRecord {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.payload
}

// Submit sends the payload as is. On success the payload is emptied and an acknowledgment is
// raised; when rejected, the payload is kept and the field errors are set (ErrInvalid is returned).
// Any other failure is kept in Err.
func (f *SubmissionForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	payload := f.payload
	f.submitting = true
	f.mu.Unlock()

	res := submit(ctx, f.logger, "SubmissionForm", func(ctx context.Context) error {
		_, err := f.client.SubmitRecord(ctx, payload)
		return err
	})

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
	f.fieldErrors = res.fieldErrors
	f.err = res.err
	switch {
	case res.ok():
		f.payload = alumni.NewRecord{}
		f.ack = true
		return nil
	case res.err != nil:
		return res.err
	default:
		return ErrInvalid
	}
}

// FieldError returns the error message of a field, "" if none.
func (f *SubmissionForm) FieldError(name string) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.fieldErrors[name]
}

func (f *SubmissionForm) FieldErrors() map[string]string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return copyFieldErrors(f.fieldErrors)
}

func (f *SubmissionForm) Err() error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.err
}

func (f *SubmissionForm) Submitting() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.submitting
}

// TakeAcknowledgment reports whether a submission succeeded since the last call.
func (f *SubmissionForm) TakeAcknowledgment() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	ack := f.ack
	f.ack = false
	return ack
}

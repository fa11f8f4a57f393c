package alumni

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/alumni/core"
)

var (
	// errors
	ErrNotFound = errors.New("record not found")
)

type (
	Repository interface {
		CreateRecord(ctx context.Context, rec Record, exec ...core.DBExecutor) (Record, error)
		// QueryRecords returns the records matching filter (all of them if nil), ordered by `ordering`
		// or by creation date when no ordering is provided.
		QueryRecords(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]Record, error)
		GetRecord(ctx context.Context, id string, exec ...core.DBExecutor) (Record, error)
	}

	Service interface {
		Create(ctx context.Context, nr NewRecord) (Record, error)
		Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Record, error)
		GetByID(ctx context.Context, id string) (Record, error)
	}

	service struct {
		repo     Repository
		validate *validator.Validate
		mailSvc  core.EmailService
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, validate *validator.Validate, mailSvc core.EmailService) Service {
	return &service{
		repo:     repo,
		validate: validate,
		mailSvc:  mailSvc,
	}
}

// Create validates and stores a new Record, then acknowledges it by email.
func (svc *service) Create(ctx context.Context, nr NewRecord) (Record, error) {
	if err := nr.Validate(svc.validate); err != nil {
		return Record{}, err
	}

	rec, err := svc.repo.CreateRecord(ctx, Record{
		FirstName:         nr.FirstName,
		LastName:          nr.LastName,
		MiddleName:        nr.MiddleName,
		EmailAddress:      nr.EmailAddress,
		PhoneNumber:       nr.PhoneNumber,
		GraduatedYear:     nr.GraduatedYear,
		PreviousJob:       nr.PreviousJob,
		CurrentJob:        nr.CurrentJob,
		LocationOrCountry: nr.LocationOrCountry,
		Supervisor:        nr.Supervisor,
		Advice:            nr.Advice,
		Social:            nr.Social,
		CreatedAt:         time.Now().UTC(),
	})
	if err != nil {
		return Record{}, errors.Wrap(err, "creating record")
	}

	svc.sendSubmissionReceivedMail(rec)
	return rec, nil
}

func (svc *service) Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Record, error) {
	if filter != nil {
		filter.Clean()
	}
	recs, err := svc.repo.QueryRecords(ctx, filter, ordering)
	if err != nil {
		return nil, errors.Wrap(err, "querying records")
	}
	return recs, nil
}

func (svc *service) GetByID(ctx context.Context, id string) (Record, error) {
	return svc.repo.GetRecord(ctx, strings.TrimSpace(id))
}

func (svc *service) sendSubmissionReceivedMail(rec Record) {
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: rec.FullName(), Address: rec.EmailAddress}},
		Subject:      fmt.Sprintf("Welcome back, class of %s!", rec.GraduatedYear),
		TemplateName: "submission_received",
		TemplateData: rec,
	})
}

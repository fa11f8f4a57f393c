package user

import (
	"context"
	"net/mail"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/alumni/core"
)

var (
	// errors
	ErrNotFound    = errors.New("user not found")
	ErrEmailExists = errors.New("a user with this email already exists")

	invalidTokenText = "invalid or expired token"
)

type (
	Repository interface {
		CreateUser(ctx context.Context, usr User, exec ...core.DBExecutor) (User, error)
		GetUser(ctx context.Context, filter GetFilter, exec ...core.DBExecutor) (User, error)
		UpdateUser(ctx context.Context, usr User, exec ...core.DBExecutor) (User, error)
	}

	Service interface {
		Create(ctx context.Context, nu NewUser) (User, error)
		GetByID(ctx context.Context, id string) (User, error)
		GetByEmail(ctx context.Context, email string) (User, error)
		// SetPassword changes the password of the User identified by email, bypassing the policy.
		SetPassword(ctx context.Context, email, pwd string) (User, error)
		// RequestPasswordReset emails a reset link to the active User identified by email, if any.
		RequestPasswordReset(ctx context.Context, pr PasswordResetRequest) error
		ResetPassword(ctx context.Context, rp ResetUserPassword) (User, error)
	}

	service struct {
		repo     Repository
		validate *validator.Validate
		mailSvc  core.EmailService
		tokens   tokenGenerator
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, validate *validator.Validate, mailSvc core.EmailService, conf *core.Config) Service {
	return newService(repo, validate, mailSvc, conf)
}

func newService(repo Repository, validate *validator.Validate, mailSvc core.EmailService, conf *core.Config) *service {
	return &service{
		repo:     repo,
		validate: validate,
		mailSvc:  mailSvc,
		tokens:   newTokenGenerator(conf.SecretKey, conf.PasswordResetTimeoutDelta),
	}
}

func (svc *service) checkEmailUniqueness(ctx context.Context, email string) error {
	if _, err := svc.repo.GetUser(ctx, GetFilter{Email: email}); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	return core.NewValidationError(ErrEmailExists, core.FieldError{Field: "email", Error: ErrEmailExists.Error()})
}

func (svc *service) Create(ctx context.Context, nu NewUser) (User, error) {
	if err := nu.Validate(svc.validate); err != nil {
		return User{}, err
	}
	if err := svc.checkEmailUniqueness(ctx, nu.Email); err != nil {
		return User{}, err
	}

	now := time.Now().UTC()
	usr := User{
		Name:      nu.Name,
		Email:     nu.Email,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}
	return svc.repo.CreateUser(ctx, usr)
}

func (svc *service) GetByID(ctx context.Context, id string) (User, error) {
	return svc.repo.GetUser(ctx, GetFilter{ID: core.CleanString(id)})
}

func (svc *service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.GetUser(ctx, GetFilter{Email: core.CleanString(email, true /* lower */)})
}

func (svc *service) SetPassword(ctx context.Context, email, pwd string) (User, error) {
	usr, err := svc.GetByEmail(ctx, email)
	if err != nil {
		return User{}, err
	}
	return svc.updatePassword(ctx, usr, pwd)
}

func (svc *service) RequestPasswordReset(ctx context.Context, pr PasswordResetRequest) error {
	usr, ok, err := svc.resettableUser(ctx, pr)
	if err != nil || !ok {
		return err
	}
	svc.sendPasswordResetMail(usr)
	return nil
}

// resettableUser returns the active User a reset was requested for.
// Unknown or inactive accounts are not an error: callers must not tell them apart.
func (svc *service) resettableUser(ctx context.Context, pr PasswordResetRequest) (User, bool, error) {
	if err := pr.Validate(svc.validate); err != nil {
		return User{}, false, err
	}
	usr, err := svc.repo.GetUser(ctx, GetFilter{Email: pr.Email})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, false, nil
		}
		return User{}, false, err
	}
	return usr, usr.IsActive, nil
}

func (svc *service) ResetPassword(ctx context.Context, rp ResetUserPassword) (User, error) {
	if err := rp.Validate(svc.validate); err != nil {
		return User{}, err
	}

	invalidToken := func(err error) error {
		return core.NewValidationError(err, core.FieldError{Field: "token", Error: invalidTokenText})
	}

	id, err := decodeUID(rp.UID)
	if err != nil {
		return User{}, invalidToken(errInvalidToken)
	}
	usr, err := svc.repo.GetUser(ctx, GetFilter{ID: id})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, invalidToken(errInvalidToken)
		}
		return User{}, err
	}
	if !usr.IsActive {
		return User{}, invalidToken(errInvalidToken)
	}
	if err := svc.tokens.verifyToken(usr, rp.Token); err != nil {
		return User{}, invalidToken(err)
	}

	if err := validatePassword(rp.Password, usr); err != nil {
		return User{}, err
	}
	return svc.updatePassword(ctx, usr, rp.Password)
}

func (svc *service) updatePassword(ctx context.Context, usr User, pwd string) (User, error) {
	if err := usr.SetPassword(pwd); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}
	usr.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateUser(ctx, usr)
}

func (svc *service) sendPasswordResetMail(usr User) {
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject:      "Password Reset",
		TemplateName: "password_reset",
		TemplateData: map[string]string{
			"Name":  usr.Name,
			"UID":   EncodeUID(usr),
			"Token": svc.tokens.makeToken(usr),
		},
	})
}

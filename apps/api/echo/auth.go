package echoapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/trezcool/alumni/core"
	"github.com/trezcool/alumni/core/user"
)

var (
	passwordResetRequestedText = "If the email address supplied is associated with an active account on this system, " +
		"an email will arrive in your inbox shortly with instructions to reset your password."
	passwordResetText = "Your password has been reset."
)

type authApi struct {
	svc    user.Service
	logger core.Logger
}

func registerAuthAPI(g *echo.Group, svc user.Service, logger core.Logger, limit echo.MiddlewareFunc) {
	api := authApi{svc: svc, logger: logger}

	ag := g.Group("/auth")
	ag.POST("/forget-password", api.forgetPassword, limit)
	ag.POST("/reset-password", api.resetPassword, limit)
}

// newRateLimitMiddleware limits the requests per client IP, eg. rate "5-M" allows 5 requests per minute.
func newRateLimitMiddleware(rate string) (echo.MiddlewareFunc, error) {
	r, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing rate %q", rate)
	}
	mw := stdlib.NewMiddleware(limiter.New(memory.NewStore(), r), stdlib.WithLimitReachedHandler(limitReached))
	return echo.WrapMiddleware(mw.Handler), nil
}

// limitReached answers with the same envelope as the other API errors.
func limitReached(w http.ResponseWriter, _ *http.Request) {
	code := http.StatusTooManyRequests
	w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSONCharsetUTF8)
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(echo.Map{"error": http.StatusText(code)})
}

// Handlers

func (api *authApi) forgetPassword(ctx echo.Context) error {
	var data user.PasswordResetRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to PasswordResetRequest")
	}

	if err := api.svc.RequestPasswordReset(ctx.Request().Context(), data); err != nil {
		if _, ok := core.AsValidationError(err); ok || isValidationErrors(err) {
			return err
		}
		// do not return errors to attackers
		api.logger.Error(fmt.Sprintf("requesting password reset: %v", err), errors.Wrap(err, "requesting password reset"))
	}
	return ctx.JSON(http.StatusOK, successResponse{Success: passwordResetRequestedText})
}

func (api *authApi) resetPassword(ctx echo.Context) error {
	var data user.ResetUserPassword
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ResetUserPassword")
	}
	if _, err := api.svc.ResetPassword(ctx.Request().Context(), data); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, successResponse{Success: passwordResetText})
}

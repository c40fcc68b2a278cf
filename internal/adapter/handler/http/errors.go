package http

import (
	"errors"

	"github.com/labstack/echo/v4"
	domainErrors "github.com/wekeepgrowing/premier-subscription/internal/domain/errors"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/lifecycle"
	pkgErrors "github.com/wekeepgrowing/premier-subscription/pkg/errors"
)

var errorCodes = []struct {
	target error
	code   string
}{
	{domainErrors.ErrOrganizationNotFound, pkgErrors.ErrNotFound},
	{domainErrors.ErrMemberNotFound, pkgErrors.ErrNotFound},
	{domainErrors.ErrSubscriptionNotFound, pkgErrors.ErrNotFound},
	{domainErrors.ErrOrganizationInactive, pkgErrors.ErrUnauthorized},
	{domainErrors.ErrMemberOrganizationMismatch, pkgErrors.ErrUnauthorized},
	{domainErrors.ErrSubscriptionCancelled, pkgErrors.ErrConflict},
	{domainErrors.ErrPlanUnchanged, pkgErrors.ErrConflict},
	{domainErrors.ErrNoFreeSlotAvailable, pkgErrors.ErrConflict},
	{domainErrors.ErrCancelAtOutOfPeriod, pkgErrors.ErrInvalidArgument},
	{domainErrors.ErrInvalidPlanTier, pkgErrors.ErrInvalidArgument},
	{domainErrors.ErrCancelAtInPast, pkgErrors.ErrInvalidArgument},
	{domainErrors.ErrInvalidID, pkgErrors.ErrInvalidArgument},
	{lifecycle.ErrInvalidSubscriptionState, pkgErrors.ErrInvalidSubscriptionState},
}

// toAppError attaches a transport code to a usecase error. Errors that are
// already coded pass through untouched.
func toAppError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *pkgErrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var denied *domainErrors.AccessDeniedError
	if errors.As(err, &denied) {
		return pkgErrors.NewAppError(pkgErrors.ErrUnauthorized, denied.Error(), err)
	}

	for _, m := range errorCodes {
		if errors.Is(err, m.target) {
			return pkgErrors.NewAppError(m.code, m.target.Error(), err)
		}
	}

	return pkgErrors.NewAppError(pkgErrors.ErrInternal, "internal server error", err)
}

func forbidden(message string) error {
	return pkgErrors.NewAppError(pkgErrors.ErrUnauthorized, message, nil)
}

func invalidArgument(message string, err error) error {
	return pkgErrors.NewAppError(pkgErrors.ErrInvalidArgument, message, err)
}

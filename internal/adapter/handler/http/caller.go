package http

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/wekeepgrowing/premier-subscription/internal/domain/entitlement"
	"github.com/wekeepgrowing/premier-subscription/internal/middleware/auth"
	"github.com/wekeepgrowing/premier-subscription/internal/usecase"
	pkgErrors "github.com/wekeepgrowing/premier-subscription/pkg/errors"
)

// resolveCaller turns the token on the request into a member with an
// entitlement context
func resolveCaller(c echo.Context, entitlements *usecase.EntitlementService) (*usecase.Caller, error) {
	user, err := auth.GetUserFromContext(c)
	if err != nil {
		return nil, pkgErrors.NewAppError(pkgErrors.ErrUnauthenticated, "authentication required", err)
	}

	caller, err := entitlements.ResolveCaller(c.Request().Context(), user.MemberID, user.OrganizationID)
	if err != nil {
		return nil, toAppError(err)
	}
	return caller, nil
}

// targetOrganization is the caller's own organization unless operating-company
// staff name another one with ?organization_id=
func targetOrganization(c echo.Context, caller *usecase.Caller) (string, error) {
	id := c.QueryParam("organization_id")
	if id == "" || id == caller.Organization.ID {
		return caller.Organization.ID, nil
	}
	if !caller.Entitlement.IsOperatingCompanyStaff {
		return "", forbidden("only operating-company staff may act on other organizations")
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", invalidArgument("organization_id must be a UUID", err)
	}
	return id, nil
}

func requireAdmin(caller *usecase.Caller) error {
	if caller.Entitlement.Role != entitlement.RoleAdmin {
		return forbidden("organization administrator role required")
	}
	return nil
}

func requireStaff(caller *usecase.Caller) error {
	if !caller.Entitlement.IsOperatingCompanyStaff {
		return forbidden("operating-company staff only")
	}
	return nil
}

// Package authz holds the pure permission-decision function for the two
// fixed roles. No role escalates or combines permissions.
package authz

import (
	"entregas/internal/apperr"
	"entregas/internal/domain"
)

// Kind names a permission-checked action.
type Kind string

// List of checked actions
const (
	ManageCouriers    Kind = "manage_couriers"
	ViewAllDeliveries Kind = "view_all_deliveries"
	ApproveDelivery   Kind = "approve_delivery"
	UploadDelivery    Kind = "upload_delivery"
	ViewOwnDeliveries Kind = "view_own_deliveries"
)

// Action is a requested action; Company is set only for UploadDelivery.
type Action struct {
	Kind    Kind
	Company domain.Company
}

// UploadFor builds the upload action for a company.
func UploadFor(c domain.Company) Action {
	return Action{Kind: UploadDelivery, Company: c}
}

// Authorize decides whether u may perform a. It returns nil on permit,
// apperr.ErrForbidden on deny and apperr.ErrUnauthorized for a missing actor.
func Authorize(u *domain.User, a Action) error {
	if u == nil {
		return apperr.ErrUnauthorized
	}
	switch a.Kind {
	case ManageCouriers, ViewAllDeliveries, ApproveDelivery:
		if u.Role != domain.RoleAdmin {
			return apperr.ErrForbidden
		}
	case UploadDelivery:
		if u.Role != domain.RoleCourier {
			return apperr.ErrForbidden
		}
		if !u.HasCompany(a.Company) {
			return apperr.ErrForbidden
		}
	case ViewOwnDeliveries:
		// any authenticated identity, implicitly scoped to its own records
	default:
		return apperr.ErrForbidden
	}
	return nil
}

package policy

import (
	"github.com/smartewaste/ewaste-backend/internal/models"
)

// Actor is the authenticated caller as seen by the policy: who they are and
// which role their profile carries.
type Actor struct {
	ID   string
	Role string
}

// Decision is an allow/deny outcome with the static reason reported on deny.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision             { return Decision{Allowed: true} }
func deny(reason string) Decision { return Decision{Reason: reason} }

func (a Actor) IsAdmin() bool { return a.Role == models.RoleAdmin }

// CanView decides read access to a single request: owners see their own,
// collectors see their assignments, admins see everything.
func CanView(actor Actor, req models.PickupRequest) Decision {
	switch actor.Role {
	case models.RoleUser:
		if req.UserID != actor.ID {
			return deny("Forbidden")
		}
	case models.RoleCollector:
		if req.CollectorID == nil || *req.CollectorID != actor.ID {
			return deny("Forbidden")
		}
	}
	return allow()
}

func CanCreate(actor Actor) Decision {
	if actor.Role != models.RoleUser {
		return deny("Only users can create requests")
	}
	return allow()
}

// CanEdit allows field edits only to the owning user. The pending-only rule
// is a lifecycle rule, enforced by the request service.
func CanEdit(actor Actor, req models.PickupRequest) Decision {
	if actor.Role != models.RoleUser || req.UserID != actor.ID {
		return deny("Only request owner can edit this request")
	}
	return allow()
}

func CanAssign(actor Actor) Decision {
	if !actor.IsAdmin() {
		return deny("Only admins can assign collectors")
	}
	return allow()
}

func CanUpdateStatus(actor Actor, req models.PickupRequest) Decision {
	switch actor.Role {
	case models.RoleUser:
		return deny("Users cannot update request status")
	case models.RoleCollector:
		if req.CollectorID == nil || *req.CollectorID != actor.ID {
			return deny("Collectors can only update their assigned requests")
		}
	}
	return allow()
}

func CanViewCollectors(actor Actor) Decision {
	if !actor.IsAdmin() {
		return deny("Only admins can view collectors")
	}
	return allow()
}

func CanRegisterCollector(actor Actor) Decision {
	if !actor.IsAdmin() {
		return deny("Only admins can register collectors")
	}
	return allow()
}

func CanViewStats(actor Actor) Decision {
	if !actor.IsAdmin() {
		return deny("Only admins can view dashboard stats")
	}
	return allow()
}

func CanExportReports(actor Actor) Decision {
	if !actor.IsAdmin() {
		return deny("Only admins can export reports")
	}
	return allow()
}

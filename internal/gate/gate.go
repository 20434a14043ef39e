// Package gate is the role-capability registry for the back office. Each of
// the four roles maps to a profile of "resource:action" permissions with
// wildcard support; handlers declare the permission a route needs and the
// gate answers yes or no. Keeping the capability descriptor in one place is
// what lets all list/table surfaces share one parametrized implementation
// instead of per-role copies.
package gate

import (
	"errors"
	"strings"
)

// Action describes the kind of operation a user wants to perform.
type Action string

const (
	ActionView    Action = "view"
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionList    Action = "list"
	ActionApprove Action = "approve"
	ActionRespond Action = "respond"
)

// Permission represents an allowed action on a resource type.
// Format: "resource:action" (e.g., "quote:create", "vehicle:list")
type Permission string

// NewPermission creates a permission from resource type and action.
func NewPermission(resourceType string, action Action) Permission {
	return Permission(resourceType + ":" + string(action))
}

// Parse splits a permission into resource type and action.
func (p Permission) Parse() (resourceType string, action Action) {
	parts := strings.SplitN(string(p), ":", 2)
	if len(parts) != 2 {
		return "", ""
	}
	return parts[0], Action(parts[1])
}

// Wildcards for super permissions
const (
	WildcardAll                     = "*"
	PermissionSuperAdmin Permission = "*:*"
)

// Matches checks if this permission matches a requested permission.
// Supports wildcards: "*:*" matches all, "quote:*" matches all quote actions.
func (p Permission) Matches(requested Permission) bool {
	if p == PermissionSuperAdmin {
		return true
	}
	if p == requested {
		return true
	}
	// Check resource wildcard: "quote:*" matches "quote:create"
	res, act := p.Parse()
	reqRes, _ := requested.Parse()
	if res == reqRes && string(act) == WildcardAll {
		return true
	}
	return false
}

// Profile is a role's set of permissions.
type Profile struct {
	name        string
	permissions map[Permission]bool
}

// NewProfile creates a profile with the given permissions.
func NewProfile(name string, permissions ...Permission) *Profile {
	p := &Profile{name: name, permissions: make(map[Permission]bool)}
	for _, perm := range permissions {
		p.permissions[perm] = true
	}
	return p
}

func (p *Profile) Name() string { return p.name }

// Permissions returns all permissions in this profile.
func (p *Profile) Permissions() []Permission {
	perms := make([]Permission, 0, len(p.permissions))
	for perm := range p.permissions {
		perms = append(perms, perm)
	}
	return perms
}

// HasPermission checks if the profile has the requested permission.
// Supports wildcard matching.
func (p *Profile) HasPermission(requested Permission) bool {
	for perm := range p.permissions {
		if perm.Matches(requested) {
			return true
		}
	}
	return false
}

// Sentinel errors returned by Gate.Authorize.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnknownRole  = errors.New("no profile defined for role")
)

// Gate maps role names to profiles.
type Gate struct {
	profiles map[string]*Profile
}

// New creates an empty Gate ready to register profiles.
func New() *Gate {
	return &Gate{profiles: make(map[string]*Profile)}
}

// Register adds a profile for a role name. Overwrites any existing profile.
func (g *Gate) Register(role string, p *Profile) {
	g.profiles[role] = p
}

// Authorize checks authorization and returns an error if denied.
func (g *Gate) Authorize(role string, perm Permission) error {
	p, ok := g.profiles[role]
	if !ok {
		return ErrUnknownRole
	}
	if !p.HasPermission(perm) {
		return ErrUnauthorized
	}
	return nil
}

// Can is a convenience wrapper returning bool instead of error.
func (g *Gate) Can(role string, perm Permission) bool {
	return g.Authorize(role, perm) == nil
}

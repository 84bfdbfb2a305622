package auth

import (
	apperrors "shopapi/internal/errors"
)

// RoleSet is the set of role names an identity holds.
type RoleSet map[string]struct{}

// NewRoleSet builds a RoleSet from role names.
func NewRoleSet(names ...string) RoleSet {
	set := make(RoleSet, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// Has reports membership of a single role.
func (s RoleSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// HasAny reports whether the set intersects the given roles.
func (s RoleSet) HasAny(names ...string) bool {
	for _, n := range names {
		if s.Has(n) {
			return true
		}
	}
	return false
}

// Names returns the role names in unspecified order.
func (s RoleSet) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	return names
}

// Identity is the authenticated caller for the current request only.
type Identity struct {
	Username string
	Roles    RoleSet
}

// Authorize checks an identity against the roles required by an operation.
// A nil identity is unauthenticated; an identity whose role set misses every
// required role is forbidden. An empty requirement admits any authenticated
// identity.
func Authorize(identity *Identity, required ...string) error {
	if identity == nil {
		return apperrors.ErrUnauthenticated
	}
	if len(required) == 0 {
		return nil
	}
	if !identity.Roles.HasAny(required...) {
		return apperrors.ErrForbidden
	}
	return nil
}

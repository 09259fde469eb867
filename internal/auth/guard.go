package auth

// The guard is a pure decision layer: handlers fetch the target row,
// then ask the guard whether the validated caller may touch it. Role
// membership is additionally enforced by route middleware; the guard
// re-checks it so the rules hold even for routes wired without one.

// Roles form a closed two-member set. The strings appear verbatim in
// the JWT role claim.
const (
	RoleAdmin    = "Admin"
	RoleSupplier = "Supplier"
)

// Identity is the validated claim set of the calling principal,
// extracted from a signature- and time-valid access token.
type Identity struct {
	ID    uint64
	Email string
	Role  string
}

// OrderRefs carries the two owner references of an order row.
type OrderRefs struct {
	UserID     uint64 // creating admin
	SupplierID uint64 // assigned fulfiller
}

// GuardOwned decides access to a resource strictly owned by one admin
// (suppliers, kanban cards, the admin account itself). Non-admin
// callers are Forbidden; an admin reaching for another admin's row
// gets NotFound so cross-tenant probing cannot confirm existence.
func GuardOwned(id Identity, ownerID uint64) error {
	if id.Role != RoleAdmin {
		return ErrForbidden
	}
	if id.ID != ownerID {
		return ErrNotFound
	}
	return nil
}

// GuardOrderRead decides read access to an order: the creating admin
// or the assigned supplier, nobody else.
func GuardOrderRead(id Identity, refs OrderRefs) error {
	switch id.Role {
	case RoleAdmin:
		if id.ID == refs.UserID {
			return nil
		}
	case RoleSupplier:
		if id.ID == refs.SupplierID {
			return nil
		}
	}
	return ErrForbidden
}

// GuardOrderStatus decides status mutation on an order, granted to
// the assigned supplier only. Admins may read their orders but do not
// hold status-mutation rights.
func GuardOrderStatus(id Identity, refs OrderRefs) error {
	if id.Role != RoleSupplier || id.ID != refs.SupplierID {
		return ErrForbidden
	}
	return nil
}

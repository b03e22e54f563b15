package service

// Requester identifies the authenticated caller of an operation.
type Requester struct {
	UserID  string
	IsStaff bool
}

// AccessPolicy decides read/write permission over owned profiles. Staff see
// everything; everyone else is limited to records they own.
type AccessPolicy struct{}

// CanAccess reports whether the requester may access a profile owned by ownerID.
func (AccessPolicy) CanAccess(req Requester, ownerID string) bool {
	if req.IsStaff {
		return true
	}
	return req.UserID == ownerID
}

// Owned is implemented by profile types that belong to a single user.
type Owned interface {
	Owner() string
}

// FilterOwned narrows a listing to the records the requester may see.
func FilterOwned[T Owned](policy AccessPolicy, req Requester, items []T) []T {
	if req.IsStaff {
		return items
	}
	allowed := make([]T, 0, 1)
	for _, item := range items {
		if policy.CanAccess(req, item.Owner()) {
			allowed = append(allowed, item)
		}
	}
	return allowed
}

package domain

// Identity is the authenticated username for the current request. It is
// resolved exactly once, at the HTTP boundary from a verified bearer token,
// and threaded explicitly into every directory/ledger/guard call rather than
// re-derived from ambient state.
type Identity string

// Anonymous is the identity of an unauthenticated caller.
const Anonymous Identity = ""

func (i Identity) String() string    { return string(i) }
func (i Identity) IsAnonymous() bool { return i == Anonymous }

// Is reports whether the identity is the given username.
func (i Identity) Is(username string) bool {
	return !i.IsAnonymous() && string(i) == username
}

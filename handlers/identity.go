package handlers

import "net/http"

// IdentityHeader carries the caller's display name on every authenticated
// call. There is no token mechanism: any caller asserting a name is trusted
// to be that participant.
const IdentityHeader = "user"

// Identity returns the caller's asserted display name, or "" if the header
// is absent. Handlers decide what an empty identity means for them.
func Identity(r *http.Request) string {
	return r.Header.Get(IdentityHeader)
}

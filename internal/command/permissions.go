package command

import (
	"slices"

	"github.com/MKhiriev/go-pack-sync/internal/pack"
)

// Permissions checked by the commands.
const (
	PermChangeID = "packsync.changeid"
	PermStatus   = "packsync.status"
	PermSync     = "packsync.sync"
	PermReload   = "packsync.reload"
)

type grantedSender struct {
	pack.Recipient
	perms []string
}

func (s grantedSender) HasPermission(permission string) bool {
	return slices.Contains(s.perms, permission)
}

// Granted returns a Sender replying to to that holds only perms.
func Granted(to pack.Recipient, perms ...string) Sender {
	return grantedSender{Recipient: to, perms: perms}
}

// Operator returns a Sender replying to to that holds every permission.
func Operator(to pack.Recipient) Sender {
	return Granted(to, PermChangeID, PermStatus, PermSync, PermReload)
}

package pack

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-pack-sync/models"
)

const (
	msgDownloading      = "Downloading resource pack from the resource pack server..."
	msgDownloaded       = "Finished downloading resource pack from the resource pack server"
	msgSyncSucceeded    = "Sync succeeded"
	msgUploading        = "Uploading resource pack to the resource pack server..."
	msgUploaded         = "Finished uploading resource pack to the resource pack server"
	msgRemoteGone       = "The resource pack server no longer has this resource pack. You need to re-upload it."
	msgNoSHA1           = "This host doesn't support SHA-1, so resource packs can't be synchronized."
	msgDeleteOldFailed  = "Failed to delete the old resource pack. This might cause problems later."
	msgBackupPresent    = "A back-up of the resource pack is stored on this server."
	msgBackupMissing    = "There is no back-up of the resource pack on this server!"
	msgNeverSynced      = "This server hasn't synchronized with the resource pack server yet."
	msgNoPackYet        = "This server doesn't have a resource pack yet."
	msgNewPackAvailable = "A new server resource pack has been configured. You will get it once you reconnect to this server."
)

func notConfigured(scope string) models.Message {
	if scope == "" {
		return models.NewMessage(models.Failure,
			"You need to use 'changeid <resource pack id>' before running this command.")
	}
	return models.NewMessage(models.Failure,
		fmt.Sprintf("You need to use 'changeid <resource pack id> %s' before running this command.", scope))
}

func changeIDHint(scope string) models.Message {
	if scope == "" {
		return models.NewMessage(models.Plain, "Use 'changeid <resource pack id>'")
	}
	return models.NewMessage(models.Plain, fmt.Sprintf("Use 'changeid <resource pack id> %s'", scope))
}

func lastSyncLine(at time.Time) string {
	local := at.Local()
	return fmt.Sprintf("The last synchronization with the resource pack server was at %s in timezone %s",
		local.Format("15:04"), local.Format("MST"))
}

package command

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-pack-sync/models"
)

// Usage lists every command with its arguments.
const Usage = "Commands: changeid <resource pack id> [scope], remove [scope], list, status [scope], sync [scope], history [scope], reload"

const (
	msgNoAccess       = "You don't have access to this command"
	msgChangeIDUsage  = "You should use changeid <new resource pack id> [scope]"
	msgRemoveUsage    = "You should use remove [scope]"
	msgDefaultRemoved = "The default resourcepack should be gone after you rejoin the server"
	msgHasDefault     = "You have configured a default resourcepack"
	msgNoDefault      = "You haven't configured a default resourcepack"
	msgNoNamed        = "You haven't configured any scope-specific resourcepacks"
	msgNamedHeader    = "You have configured scope-specific resourcepacks for the following scopes:"
	msgReloaded       = "Config should have been reloaded"
	msgNoReload       = "Reloading the config is not available"
	msgURLChanged     = "It looks like you changed the resource pack host url. " +
		"This change will be applied after you restart packsync."
)

func scopeRemoved(scope string) models.Message {
	return models.NewMessage(models.Success,
		fmt.Sprintf("The resourcepack in scope %s should be gone after you rejoin the server", scope))
}

func notConfiguredForScope(scope string) models.Message {
	return models.NewMessage(models.Failure, "No resourcepack was configured for scope "+scope)
}

func noStatusForScope(scope string) models.Message {
	return models.NewMessage(models.Failure, "No resourcepack is configured for scope "+scope)
}

func noHistory(scope string) models.Message {
	if scope == "" {
		return models.NewMessage(models.Plain, "No synchronization was recorded for the default resourcepack")
	}
	return models.NewMessage(models.Plain, "No synchronization was recorded for scope "+scope)
}

func historyLine(ev models.SyncEvent) string {
	line := fmt.Sprintf("%s %s %s", ev.RecordedAt.Local().Format(time.DateTime), ev.PackID, ev.Outcome)
	if ev.StatusCode != 0 {
		line += fmt.Sprintf(" (code %d)", ev.StatusCode)
	}
	if ev.Bytes > 0 {
		line += fmt.Sprintf(", %d bytes", ev.Bytes)
	}
	if ev.Detail != "" {
		line += ": " + ev.Detail
	}
	return line
}

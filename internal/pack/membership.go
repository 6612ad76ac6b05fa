package pack

import (
	"bytes"
	"strings"

	"github.com/MKhiriev/go-pack-sync/internal/config"
	"github.com/MKhiriev/go-pack-sync/models"
)

// PackStatus is a participant's answer to a pack offer.
type PackStatus int

const (
	StatusAccepted PackStatus = iota
	StatusLoaded
	StatusDeclined
	StatusFailedDownload
)

// Reaction is what [Registry.OnPackStatus] did about a status.
type Reaction int

const (
	ReactionNone Reaction = iota
	ReactionCommand
	ReactionKick
	ReactionMessage
)

// playerPlaceholder is replaced by the participant name in policy commands.
const playerPlaceholder = "<player>"

// PackFor returns the URL and digest served to participants of scope. An
// unregistered scope falls back to the default scope. Either value is empty
// when the scope has no usable pack.
func (r *Registry) PackFor(scope string) (url string, digest []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.packForLocked(scope)
}

func (r *Registry) packForLocked(scope string) (string, []byte) {
	state := r.lookup(scope)
	if state == nil {
		state = r.defaultState
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	return state.urlLocked(), bytes.Clone(state.digest)
}

// OnJoin hands the pack of scope to a newly connected participant. Nothing
// is applied unless both URL and digest are known. It reports whether a
// pack was applied.
func (r *Registry) OnJoin(p Participant, scope string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	url, digest := r.packForLocked(scope)
	if url == "" || digest == nil {
		return false
	}
	p.ApplyPack(url, digest)
	return true
}

// OnScopeChange re-applies the pack when a participant moves from one scope
// to another and the effective URL or digest differs. It reports whether a
// pack was applied.
func (r *Registry) OnScopeChange(p Participant, from, to string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	oldURL, oldDigest := r.packForLocked(from)
	newURL, newDigest := r.packForLocked(to)

	if oldURL == newURL && bytes.Equal(oldDigest, newDigest) {
		return false
	}
	if newURL == "" || newDigest == nil {
		return false
	}
	p.ApplyPack(newURL, newDigest)
	return true
}

// OnPackStatus applies the configured policy when m declines the pack or
// fails to download it. A policy command runs first, a kick second and a
// plain message last; only the first configured one is used.
func (r *Registry) OnPackStatus(m Member, status PackStatus) Reaction {
	r.mu.Lock()
	var policy config.StatusPolicy
	switch status {
	case StatusDeclined:
		policy = r.policy.Reject
	case StatusFailedDownload:
		policy = r.policy.Failed
	default:
		r.mu.Unlock()
		return ReactionNone
	}
	commands := r.commands
	r.mu.Unlock()

	log := r.deps.logger.With().Str("member", m.Name()).Int("status", int(status)).Logger()

	switch {
	case policy.Command != "":
		if commands == nil {
			log.Warn().Msg("no command runner, pack status command skipped")
			return ReactionNone
		}
		line := strings.ReplaceAll(policy.Command, playerPlaceholder, m.Name())
		log.Info().Str("command", line).Msg("running pack status command")
		commands.RunCommand(line)
		return ReactionCommand
	case policy.Kick:
		log.Info().Msg("kicking member over pack status")
		m.Kick(policy.KickMessage)
		return ReactionKick
	case policy.Message != "":
		m.Send(models.NewMessage(models.Plain, policy.Message))
		return ReactionMessage
	}
	return ReactionNone
}

// SetPolicy replaces the pack status policy. Used by config reloads.
func (r *Registry) SetPolicy(policy config.Policy) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.policy = policy
}

// SetCommandRunner sets the runner of policy commands.
func (r *Registry) SetCommandRunner(c CommandRunner) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.commands = c
}

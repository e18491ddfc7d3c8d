package constants

const (
	HeaderRequestIDKey    = "X-Request-ID"
	HeaderLoginTokenKey   = "X-Arena-JWT-Token"
	HeaderRefreshTokenKey = "X-Arena-Refresh-Token"
)

const ServiceName = "CodeArena"

const (
	ContextParticipantClaimsKey = "X-Arena-Participant-Claims"
)

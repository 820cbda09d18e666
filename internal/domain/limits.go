package domain

const (
	// MaxMessageLength is the transport's message size ceiling. It doubles
	// as the maximum length of one inbound command.
	MaxMessageLength = 1372

	// MaxArgs bounds one tokenized command: the command name plus up to
	// three arguments.
	MaxArgs = 4

	MaxSessions       = 256
	MaxPasswordLength = 64
	MaxNameLength     = 128

	// AddressLength is the size in bytes of a peer address; identities on
	// the wire are its hex encoding.
	AddressLength    = 32
	AddressHexLength = AddressLength * 2

	SecondsPerDay = 86400
)

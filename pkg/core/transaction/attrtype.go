package transaction

//go:generate stringer -type=AttrType -linecomment

// AttrType represents the purpose of the attribute.
type AttrType uint8

// List of valid attribute types.
const (
	// HighPriority whitelists transaction to be accepted into block by
	// committee.
	HighPriority AttrType = 1
	// OracleResponseT is an oracle response attribute. The "T" suffix is for
	// the type name not to clash with the OracleResponse structure.
	OracleResponseT AttrType = 0x11 // OracleResponse
	// NotValidBeforeT makes transaction invalid before the specified height.
	NotValidBeforeT AttrType = 0x20 // NotValidBefore
	// ConflictsT makes transaction invalid if the conflicting one is accepted
	// onchain.
	ConflictsT AttrType = 0x21 // Conflicts
)

func (a AttrType) allowMultiple() bool {
	return a == ConflictsT
}

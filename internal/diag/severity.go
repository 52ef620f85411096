package diag

// Severity orders diagnostics; Bag.Sort puts higher severities first at the
// same span.
type Severity uint8

const (
	SevInfo Severity = iota
	// SevWarning is used for problems that leave the stream intact, such as a
	// token cache that could not be read or written.
	SevWarning
	// SevError marks lexer and load failures. The CLI exits non-zero when any
	// were reported, and the driver skips caching that file.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevError:
		return "ERROR"
	case SevWarning:
		return "WARNING"
	case SevInfo:
		return "INFO"
	default:
		return "UNKNOWN"
	}
}

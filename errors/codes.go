package errors

// ErrorCode represents a unique identifier for error types.
// Codes are organized by category:
//   - E1xxx: Parse errors
//   - E2xxx: Configuration errors
type ErrorCode string

const (
	// Parse errors (E1xxx)
	E1001 ErrorCode = "E1001" // Unexpected token
	E1002 ErrorCode = "E1002" // Malformed token
	E1003 ErrorCode = "E1003" // Unsupported feature
	E1004 ErrorCode = "E1004" // Strict mode violation
	E1005 ErrorCode = "E1005" // Module grammar violation
	E1006 ErrorCode = "E1006" // Unresolved label
	E1007 ErrorCode = "E1007" // Mismatched JSX tag
	E1008 ErrorCode = "E1008" // Invalid syntax

	// Configuration errors (E2xxx)
	E2001 ErrorCode = "E2001" // Unknown feature
	E2002 ErrorCode = "E2002" // Invalid source type
	E2003 ErrorCode = "E2003" // Conflicting options
)

var codeDescriptions = map[ErrorCode]string{
	E1001: "unexpected token",
	E1002: "malformed token",
	E1003: "unsupported feature",
	E1004: "strict mode violation",
	E1005: "module grammar violation",
	E1006: "unresolved label",
	E1007: "mismatched JSX tag",
	E1008: "invalid syntax",

	E2001: "unknown feature",
	E2002: "invalid source type",
	E2003: "conflicting options",
}

// Description returns the short description for an error code.
func (c ErrorCode) Description() string {
	if desc, ok := codeDescriptions[c]; ok {
		return desc
	}
	return "unknown error"
}

// String returns the error code as a string.
func (c ErrorCode) String() string {
	return string(c)
}

// Category returns the error category based on the code prefix.
func (c ErrorCode) Category() string {
	if len(c) < 2 {
		return "unknown"
	}
	switch c[1] {
	case '1':
		return "parse"
	case '2':
		return "config"
	default:
		return "unknown"
	}
}

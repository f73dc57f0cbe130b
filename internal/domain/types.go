package domain

// ReturnAs selects how read content is decoded.
type ReturnAs string

const (
	ReturnUTF8          ReturnAs = "utf8"
	ReturnBuffer        ReturnAs = "buf"
	ReturnJSON          ReturnAs = "json"
	ReturnJSONWithDates ReturnAs = "jsonWithDates"
)

// ParseReturnAs maps a decode mode name to a ReturnAs. Unrecognized names
// fall back to ReturnUTF8.
func ParseReturnAs(s string) ReturnAs {
	switch ReturnAs(s) {
	case ReturnBuffer, ReturnJSON, ReturnJSONWithDates:
		return ReturnAs(s)
	default:
		return ReturnUTF8
	}
}

// Valid reports whether r names a known decode mode.
func (r ReturnAs) Valid() bool {
	switch r {
	case ReturnUTF8, ReturnBuffer, ReturnJSON, ReturnJSONWithDates:
		return true
	default:
		return false
	}
}

// String returns the mode name.
func (r ReturnAs) String() string {
	return string(r)
}

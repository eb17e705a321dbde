package render

import "strings"

// Version is an API representation version.
type Version int

const (
	// V1 is the earliest stable version and the default.
	V1 Version = iota + 1
	// V2 adds timestamps to catalog entities and the seller's username to
	// marketplace listings.
	V2
)

// Versions lists every supported version, oldest first.
var Versions = []Version{V1, V2}

// ParseVersion maps a version token ("v1", "V2", "2") to a Version. Empty and
// unknown tokens map to V1.
func ParseVersion(token string) Version {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(token)), "v") {
	case "2":
		return V2
	default:
		return V1
	}
}

func (v Version) String() string {
	switch v {
	case V2:
		return "v2"
	default:
		return "v1"
	}
}

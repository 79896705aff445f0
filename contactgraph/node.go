package contactgraph

import "strings"

// Node is an opaque key for either a satellite or a ground location. The two
// namespaces are kept disjoint by construction so a satellite and a ground
// station can never collide even if given the same human-readable ID, per
// spec.md §3's "both are opaque string keys with disjoint namespaces".
type Node string

const (
	satPrefix    = "sat:"
	groundPrefix = "gs:"
)

// SatelliteNode builds the Node key for a satellite ID.
func SatelliteNode(id string) Node {
	return Node(satPrefix + id)
}

// GroundNode builds the Node key for a ground-station ID.
func GroundNode(id string) Node {
	return Node(groundPrefix + id)
}

// IsSatellite reports whether n was built by SatelliteNode.
func (n Node) IsSatellite() bool {
	return strings.HasPrefix(string(n), satPrefix)
}

// IsGround reports whether n was built by GroundNode.
func (n Node) IsGround() bool {
	return strings.HasPrefix(string(n), groundPrefix)
}

// ID strips the namespace prefix, returning the human-readable identifier.
func (n Node) ID() string {
	s := string(n)
	if i := strings.IndexByte(s, ':'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// EdgeKey is a directed edge identifier used directly as a map key, per
// DESIGN NOTES' instruction to replace string-parsed "A-B" keys with a
// struct pair.
type EdgeKey struct {
	Src Node
	Dst Node
}

// String renders the key in "src-dst" form, retained only for diagnostics
// and logging per DESIGN NOTES.
func (k EdgeKey) String() string {
	return string(k.Src) + "-" + string(k.Dst)
}

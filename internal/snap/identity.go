package snap

// RelationKind labels how two snapped trails relate.
type RelationKind int

const (
	// Unrelated trails share no structure, id or name.
	Unrelated RelationKind = iota
	// Same means both refs point at structurally identical polylines.
	Same
	// Related trails are fragments of one logical trail split across
	// spatial tiles, matched by id or, failing that, by name.
	Related
)

// String returns the relation kind name.
func (k RelationKind) String() string {
	switch k {
	case Same:
		return "same"
	case Related:
		return "related"
	default:
		return "unrelated"
	}
}

// Relation is the classified relationship between two trail refs. SharedKey
// carries the id or name that matched for Related pairs.
type Relation struct {
	Kind      RelationKind
	SharedKey string
}

// Classify compares the trails referenced by two snap results. Sameness is
// a fast structural check (equal length, equal first and last coordinates,
// exact equality rather than proximity); anything that fails it but shares
// a trail id or name is Related. Nil refs classify as Unrelated.
func Classify(prev, cur *TrailRef) Relation {
	if prev == nil || cur == nil {
		return Relation{Kind: Unrelated}
	}

	a, b := prev.Coordinates, cur.Coordinates
	if len(a) >= 2 && len(a) == len(b) &&
		a.First().Equal(b.First()) && a.Last().Equal(b.Last()) {
		return Relation{Kind: Same}
	}

	if prev.TrailID != "" && prev.TrailID == cur.TrailID {
		return Relation{Kind: Related, SharedKey: prev.TrailID}
	}
	if prev.TrailName != "" && prev.TrailName == cur.TrailName {
		return Relation{Kind: Related, SharedKey: prev.TrailName}
	}
	return Relation{Kind: Unrelated}
}

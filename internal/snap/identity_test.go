package snap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trailsketch/trailsketch/internal/geo"
)

func refFor(id, name string, line geo.Polyline) *TrailRef {
	return &TrailRef{TrailID: id, TrailName: name, Coordinates: line}
}

func TestClassify_NilRefs(t *testing.T) {
	line := geo.Polyline{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 0}}

	assert.Equal(t, Unrelated, Classify(nil, nil).Kind)
	assert.Equal(t, Unrelated, Classify(refFor("a", "", line), nil).Kind)
	assert.Equal(t, Unrelated, Classify(nil, refFor("a", "", line)).Kind)
}

func TestClassify_SameTrail(t *testing.T) {
	line := geo.Polyline{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 0}, {Lon: 2, Lat: 0}}

	// The source hands out fresh instances per query; sameness must hold
	// across distinct clones of the same geometry.
	rel := Classify(refFor("", "", line.Clone()), refFor("", "", line.Clone()))
	assert.Equal(t, Same, rel.Kind)
}

func TestClassify_DifferentLengthNotSame(t *testing.T) {
	a := geo.Polyline{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 0}, {Lon: 2, Lat: 0}}
	b := geo.Polyline{{Lon: 0, Lat: 0}, {Lon: 2, Lat: 0}}

	rel := Classify(refFor("", "", a), refFor("", "", b))
	assert.Equal(t, Unrelated, rel.Kind)
}

func TestClassify_RelatedByID(t *testing.T) {
	a := geo.Polyline{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 0}}
	b := geo.Polyline{{Lon: 1.0002, Lat: 0}, {Lon: 2, Lat: 0}}

	rel := Classify(refFor("trail-9", "West Half", a), refFor("trail-9", "East Half", b))
	assert.Equal(t, Related, rel.Kind)
	assert.Equal(t, "trail-9", rel.SharedKey)
}

func TestClassify_RelatedByNameWhenIDMissing(t *testing.T) {
	a := geo.Polyline{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 0}}
	b := geo.Polyline{{Lon: 1.0002, Lat: 0}, {Lon: 2, Lat: 0}}

	rel := Classify(refFor("", "Timpooneke Trail", a), refFor("", "Timpooneke Trail", b))
	assert.Equal(t, Related, rel.Kind)
	assert.Equal(t, "Timpooneke Trail", rel.SharedKey)
}

func TestClassify_IDTakesPrecedenceOverName(t *testing.T) {
	a := geo.Polyline{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 0}}
	b := geo.Polyline{{Lon: 1.0002, Lat: 0}, {Lon: 2, Lat: 0}}

	rel := Classify(refFor("trail-9", "Same Name", a), refFor("trail-9", "Same Name", b))
	assert.Equal(t, "trail-9", rel.SharedKey)
}

func TestClassify_EmptyKeysNeverMatch(t *testing.T) {
	a := geo.Polyline{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 0}}
	b := geo.Polyline{{Lon: 5, Lat: 5}, {Lon: 6, Lat: 5}}

	rel := Classify(refFor("", "", a), refFor("", "", b))
	assert.Equal(t, Unrelated, rel.Kind)
}

func TestClassify_LoopSharingEndpoints(t *testing.T) {
	// Two distinct loops with the same vertex count and coincident
	// endpoints defeat the structural check and classify as Same. Accepted
	// limitation: the slice that follows still produces valid geometry on
	// whichever loop the later click snapped to.
	a := geo.Polyline{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 0}, {Lon: 1, Lat: 1}, {Lon: 0, Lat: 0}}
	b := geo.Polyline{{Lon: 0, Lat: 0}, {Lon: -1, Lat: 0}, {Lon: -1, Lat: -1}, {Lon: 0, Lat: 0}}

	rel := Classify(refFor("", "", a), refFor("", "", b))
	assert.Equal(t, Same, rel.Kind)
}

func TestRelationKind_String(t *testing.T) {
	assert.Equal(t, "same", Same.String())
	assert.Equal(t, "related", Related.String())
	assert.Equal(t, "unrelated", Unrelated.String())
}

package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/mine/components"
	"github.com/pthm-cable/mine/mask"
)

// Marker depths on the map scene, above the map and below the mask overlay.
const (
	RegionMarkerZ = 20
	SamplePointZ  = 21
)

// RegionSpawner turns extracted mask regions and points into map-scene entities.
type RegionSpawner struct {
	world *ecs.World

	regionMapper *ecs.Map3[components.Position, components.RegionMarker, components.SceneTag]
	pointMapper  *ecs.Map3[components.Position, components.SamplePoint, components.SceneTag]

	regionFilter ecs.Filter1[components.RegionMarker]
	pointFilter  ecs.Filter1[components.SamplePoint]

	pointSize float32
}

// NewRegionSpawner creates a spawner whose sample points have the given half-diagonal.
func NewRegionSpawner(w *ecs.World, pointSize float32) *RegionSpawner {
	return &RegionSpawner{
		world:        w,
		regionMapper: ecs.NewMap3[components.Position, components.RegionMarker, components.SceneTag](w),
		pointMapper:  ecs.NewMap3[components.Position, components.SamplePoint, components.SceneTag](w),
		regionFilter: *ecs.NewFilter1[components.RegionMarker](w),
		pointFilter:  *ecs.NewFilter1[components.SamplePoint](w),
		pointSize:    pointSize,
	}
}

// Spawn creates one marker per region (centered on its box) and one entity per point.
// Regions are spawned in name order. Returns the number of markers and points created.
func (s *RegionSpawner) Spawn(res mask.Result) (regions, points int) {
	tag := components.SceneTag{Scene: components.SceneMap}

	for _, p := range res.Points {
		pos := components.Position{X: float32(p.X), Y: float32(p.Y), Z: SamplePointZ}
		pt := components.SamplePoint{Size: s.pointSize}
		s.pointMapper.NewEntity(&pos, &pt, &tag)
		points++
	}

	for _, name := range res.Names() {
		box := res.Regions[name]
		c := mask.Center(box)
		pos := components.Position{X: float32(c.X), Y: float32(c.Y), Z: RegionMarkerZ}
		marker := components.RegionMarker{Name: name, Box: box}
		s.regionMapper.NewEntity(&pos, &marker, &tag)
		regions++
	}

	return regions, points
}

// Clear removes every marker and point entity.
func (s *RegionSpawner) Clear() {
	var toRemove []ecs.Entity

	query := s.regionFilter.Query()
	for query.Next() {
		toRemove = append(toRemove, query.Entity())
	}
	pq := s.pointFilter.Query()
	for pq.Next() {
		toRemove = append(toRemove, pq.Entity())
	}

	for _, e := range toRemove {
		s.world.RemoveEntity(e)
	}
}

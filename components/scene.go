package components

// Scene identifies one of the game's scenes.
type Scene uint8

const (
	SceneMine Scene = iota
	SceneMap
	SceneTavern
)

// Scenes lists every scene in cycle order.
var Scenes = []Scene{SceneMine, SceneMap, SceneTavern}

// Next returns the scene that follows s in the Tab cycle: mine, map, tavern, mine.
func (s Scene) Next() Scene {
	switch s {
	case SceneMine:
		return SceneMap
	case SceneMap:
		return SceneTavern
	default:
		return SceneMine
	}
}

// String returns the display name of s.
func (s Scene) String() string {
	switch s {
	case SceneMine:
		return "Mine"
	case SceneMap:
		return "Map"
	case SceneTavern:
		return "Tavern"
	}
	return "Unknown"
}

// SceneTag marks an entity as belonging to a scene. Entities tagged with a scene are
// only updated and drawn while that scene is current.
type SceneTag struct {
	Scene Scene
}

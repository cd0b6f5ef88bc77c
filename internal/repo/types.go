// ABOUTME: Core repository types: content categories and the progress callback
// ABOUTME: Categories map to the fixed on-disk directory layout under the root

package repo

// Category identifies one of the five content partitions a package's files
// are distributed into.
type Category int

const (
	CategoryLevels Category = iota
	CategoryMusic
	CategoryGraphics
	CategorySounds
	CategoryWorlds
)

// Categories returns all categories in manifest order.
func Categories() []Category {
	return []Category{CategoryLevels, CategoryMusic, CategoryGraphics, CategorySounds, CategoryWorlds}
}

// String returns the manifest key for the category.
func (c Category) String() string {
	switch c {
	case CategoryLevels:
		return "levels"
	case CategoryMusic:
		return "music"
	case CategoryGraphics:
		return "graphics"
	case CategorySounds:
		return "sounds"
	case CategoryWorlds:
		return "worlds"
	default:
		return "unknown"
	}
}

// Dir returns the category's directory relative to the repository root.
// These names and their nesting are an on-disk compatibility contract with
// existing installed repositories and must not change.
func (c Category) Dir() string {
	switch c {
	case CategoryLevels:
		return "levels"
	case CategoryMusic:
		return "music/contrib-music"
	case CategoryGraphics:
		return "pixmaps/contrib-graphics"
	case CategorySounds:
		return "sounds/contrib-sounds"
	case CategoryWorlds:
		return "world"
	default:
		return ""
	}
}

// ProgressFunc receives transfer progress: overall percent complete (0-100),
// the name of the unit currently being transferred, and that unit's own
// percent complete (0-100). It is advisory only and never affects control
// flow; callers may pass nil.
type ProgressFunc func(overall float64, unit string, unitPercent float64)

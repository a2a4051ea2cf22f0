package wordlist

// words is the fixed dictionary session ids are drawn from. Short,
// unambiguous, lowercase-only entries so ids are easy to read aloud and
// safe to embed in a URL query string without escaping.
var words = []string{
	"amber", "river", "kestrel", "cedar", "ember", "willow", "granite", "comet",
	"harbor", "meadow", "quartz", "thistle", "maple", "falcon", "canyon", "lagoon",
	"juniper", "copper", "violet", "basalt", "orchid", "marble", "tundra", "saffron",
	"cobalt", "hollow", "prairie", "cinder", "ripple", "alder", "zephyr", "ivory",
	"sable", "pebble", "lantern", "mosaic", "plume", "ridge", "spruce", "tidal",
	"umber", "vapor", "wren", "yarrow", "zenith", "briar", "coral", "dune",
	"fern", "glade", "heron", "inlet", "jasper", "knoll", "linen", "moss",
	"nectar", "onyx", "pine", "quill", "reed", "stone", "timber", "urchin",
	"vine", "walnut", "yonder", "ash", "birch", "clover", "dusk", "elm",
	"frost", "gull", "hazel", "iris", "jade", "kelp", "lark", "mint",
	"nimbus", "otter", "petal", "quiver", "rowan", "slate", "thorn", "umbra",
	"velvet", "wisp", "yew", "zest", "auburn", "bramble", "current", "driftwood",
}

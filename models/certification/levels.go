package certification

const (
	LevelTechnician         = "기술사"
	LevelEngineer           = "기사"
	LevelIndustrialEngineer = "산업기사"
	LevelCraftsman          = "기능사"
)

// LevelInfo carries everything derived from a level name: its ranking and how the
// tech tree draws it. Adding a level means adding one row here.
type LevelInfo struct {
	Name       string
	Order      int
	Y          int
	Background string
	Border     string
}

var Levels = []LevelInfo{
	{Name: LevelTechnician, Order: 4, Y: 0, Background: "#fef3c7", Border: "#f59e0b"},
	{Name: LevelEngineer, Order: 3, Y: 150, Background: "#dbeafe", Border: "#3b82f6"},
	{Name: LevelIndustrialEngineer, Order: 2, Y: 300, Background: "#dcfce7", Border: "#22c55e"},
	{Name: LevelCraftsman, Order: 1, Y: 450, Background: "#f3e8ff", Border: "#a855f7"},
}

// UnknownLevel is used for a missing level or one not in Levels.
var UnknownLevel = LevelInfo{Name: "", Order: 0, Y: 600, Background: "#f3f4f6", Border: "#9ca3af"}

func LookupLevel(name *string) (LevelInfo, bool) {
	if name == nil {
		return UnknownLevel, false
	}
	for _, l := range Levels {
		if l.Name == *name {
			return l, true
		}
	}
	return UnknownLevel, false
}

// OrderFor returns the ranking for a level name, 0 when unknown.
func OrderFor(name *string) int {
	l, _ := LookupLevel(name)
	return l.Order
}

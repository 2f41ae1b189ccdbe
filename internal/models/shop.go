package models

// Effect tags what an item is meant to do. Only EffectTheme is acted on;
// the rest are carried for a future layer to interpret.
type Effect string

const (
	EffectFreeze     Effect = "freeze"
	EffectMultiplier Effect = "multiplier"
	EffectTheme      Effect = "theme"
)

// ShopItem is a static catalog entry.
type ShopItem struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Cost        int    `yaml:"cost" json:"cost"`
	Icon        string `yaml:"icon" json:"icon"`
	Effect      Effect `yaml:"effect" json:"effect"`
}

const (
	ItemStreakFreeze = "streak_freeze"
	ItemXPBoost      = "xp_boost"
	ItemThemeGold    = "theme_gold"
)

// Catalog is the shop's fixed item list.
var Catalog = []ShopItem{
	{
		ID:          ItemStreakFreeze,
		Name:        "Streak Freeze",
		Description: "Protects your streak for 24 hours if you miss a day.",
		Cost:        500,
		Icon:        "Shield",
		Effect:      EffectFreeze,
	},
	{
		ID:          ItemXPBoost,
		Name:        "XP Booster",
		Description: "2x XP gain for the next 24 hours.",
		Cost:        800,
		Icon:        "Zap",
		Effect:      EffectMultiplier,
	},
	{
		ID:          ItemThemeGold,
		Name:        "Midas Protocol",
		Description: "Unlocks the prestigious Gold visual theme for the entire app.",
		Cost:        5000,
		Icon:        "Crown",
		Effect:      EffectTheme,
	},
}

// FindItem looks up a catalog entry by id.
func FindItem(id string) (ShopItem, bool) {
	for _, it := range Catalog {
		if it.ID == id {
			return it, true
		}
	}
	return ShopItem{}, false
}

package engine

import (
	"math"

	"github.com/tatianab/just-do-now/internal/models"
)

// Attribute names one of the five player stats.
type Attribute int

const (
	Vitality Attribute = iota
	Intellect
	Willpower
	Tech
	Charisma
)

var attributeNames = [...]string{"vitality", "intellect", "willpower", "tech", "charisma"}

func (a Attribute) String() string {
	if a < 0 || int(a) >= len(attributeNames) {
		return "unknown"
	}
	return attributeNames[a]
}

// AllAttributes is the display order.
var AllAttributes = []Attribute{Vitality, Intellect, Willpower, Tech, Charisma}

// AttributeFor routes a category to the stat its completions train.
// Mindset and Routine share willpower.
func AttributeFor(c models.Category) Attribute {
	switch c {
	case models.CategoryHealth:
		return Vitality
	case models.CategoryWork:
		return Intellect
	case models.CategorySkill:
		return Tech
	case models.CategoryMindset, models.CategoryRoutine:
		return Willpower
	default:
		return Charisma
	}
}

// AttributeChange is round(±2 * (0.5 + eff/100)), halves rounding up.
func AttributeChange(positive bool, efficiency int) int {
	base := -2.0
	if positive {
		base = 2.0
	}
	mult := 0.5 + float64(ClampEfficiency(efficiency))/100
	return int(math.Floor(base*mult + 0.5))
}

// ApplyDelta moves the attribute routed from category and clamps it to [0,100].
func ApplyDelta(attrs models.Attributes, category models.Category, positive bool, efficiency int) models.Attributes {
	change := AttributeChange(positive, efficiency)
	p := attributeField(&attrs, AttributeFor(category))
	*p = clamp(*p+change, 0, 100)
	return attrs
}

// AttributeValue reads a single stat.
func AttributeValue(attrs models.Attributes, a Attribute) int {
	return *attributeField(&attrs, a)
}

// ClampAttributes forces every stat into [0,100].
func ClampAttributes(attrs models.Attributes) models.Attributes {
	for _, a := range AllAttributes {
		p := attributeField(&attrs, a)
		*p = clamp(*p, 0, 100)
	}
	return attrs
}

func attributeField(attrs *models.Attributes, a Attribute) *int {
	switch a {
	case Vitality:
		return &attrs.Vitality
	case Intellect:
		return &attrs.Intellect
	case Willpower:
		return &attrs.Willpower
	case Tech:
		return &attrs.Tech
	default:
		return &attrs.Charisma
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

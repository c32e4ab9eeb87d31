package feed

import "strings"

// Classifier holds the keyword tables that drive type, region, and genre
// inference. The tables are data, not logic: a deployment can correct a
// misclassifying keyword without a code change. Matching is substring-based
// against lowercased category text, and the rule order is load-bearing:
// Feature before Event before Program, first match wins.
type Classifier struct {
	FeatureKeywords []string
	EventKeywords   []string
	ProgramKeywords []string
	RegionKeywords  []string
	GenreKeywords   []string
}

// DefaultClassifier returns the standard keyword tables used in production.
func DefaultClassifier() *Classifier {
	return &Classifier{
		FeatureKeywords: []string{"feature", "article", "story"},
		EventKeywords:   []string{"event", "concert", "festival"},
		ProgramKeywords: []string{"program"},
		RegionKeywords: []string{
			"west africa", "east africa", "north africa", "central africa",
			"southern africa", "horn of africa", "sahel", "maghreb", "africa",
			"nigeria", "ghana", "senegal", "mali", "benin", "togo",
			"ivory coast", "burkina faso", "guinea", "gambia", "cape verde",
			"kenya", "tanzania", "uganda", "ethiopia", "somalia", "rwanda",
			"burundi", "south africa", "zimbabwe", "zambia", "mozambique",
			"botswana", "namibia", "lesotho", "eswatini", "malawi", "angola",
			"congo", "cameroon", "gabon", "chad", "niger", "sudan",
			"egypt", "morocco", "algeria", "tunisia", "libya", "mauritania",
			"madagascar", "mauritius", "seychelles", "eritrea", "djibouti",
			"sierra leone", "liberia",
		},
		GenreKeywords: []string{
			"afrobeat", "afrobeats", "highlife", "hiplife", "juju", "fuji",
			"apala", "palm-wine", "palmwine", "soukous", "ndombolo", "rumba",
			"makossa", "bikutsi", "mbalax", "wassoulou", "desert blues",
			"tuareg", "gnawa", "rai", "chaabi", "benga", "bongo flava",
			"taarab", "kadongo kamu", "kwaito", "amapiano", "gqom",
			"mbaqanga", "isicathamiya", "maskandi", "marabi", "kwela",
			"chimurenga", "sungura", "marrabenta", "kuduro", "semba",
			"kizomba", "morna", "coladeira", "funana", "sega", "maloya",
			"zouglou", "coupe-decale", "azonto", "afro-jazz", "afro-house",
			"afro-soul", "afro-fusion", "ethio-jazz",
		},
	}
}

// Type classifies a category list into a content bucket. Rules are evaluated
// in a fixed precedence order and the first matching rule wins; a category
// list not matching any rule is an Episode.
func (c *Classifier) Type(categories []string) ContentType {
	lowered := make([]string, len(categories))
	for i, cat := range categories {
		lowered[i] = strings.ToLower(cat)
	}
	switch {
	case anyContains(lowered, c.FeatureKeywords):
		return TypeFeature
	case anyContains(lowered, c.EventKeywords):
		return TypeEvent
	case anyContains(lowered, c.ProgramKeywords):
		return TypeProgram
	}
	return TypeEpisode
}

// Region returns the first raw category string naming a known region, or ""
// when none match. The label is the category as published, not the keyword
// that matched, and is a hint rather than an authoritative taxonomy.
func (c *Classifier) Region(categories []string) string {
	return firstMatch(categories, c.RegionKeywords)
}

// Genre returns the first raw category string naming a known genre, or "".
func (c *Classifier) Genre(categories []string) string {
	return firstMatch(categories, c.GenreKeywords)
}

func anyContains(lowered []string, keywords []string) bool {
	for _, cat := range lowered {
		for _, kw := range keywords {
			if strings.Contains(cat, kw) {
				return true
			}
		}
	}
	return false
}

func firstMatch(categories []string, keywords []string) string {
	for _, cat := range categories {
		lc := strings.ToLower(cat)
		for _, kw := range keywords {
			if strings.Contains(lc, kw) {
				return cat
			}
		}
	}
	return ""
}

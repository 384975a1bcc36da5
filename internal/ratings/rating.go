// Package ratings implements the player identity resolution and
// ratings-enrichment pipeline: an in-memory ratings store loaded from a bulk
// dataset, exact-then-fuzzy name matching, and best-effort live enrichment
// merged over local data.
//
// The dataset loader normalizes raw export records into the canonical
// PlayerRating shape; the resolver is the public entry point the API and CLI
// consume.
package ratings

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const sofifaPlayerURLFormat = "https://sofifa.com/player/%d"

// Defaults applied when a dataset record omits a field.
const (
	defaultSkillValue = 65
	defaultHeightCM   = 175
	defaultWeightKG   = 70
	defaultFoot       = "Right"
	defaultWorkRates  = "Medium/Medium"
	defaultStars      = 3
	defaultAge        = 25
)

// SkillNames lists the 25 canonical skill keys every rating carries.
var SkillNames = []string{
	"crossing", "finishing", "headingAccuracy", "shortPassing", "volleys",
	"ballControl", "curve", "fkAccuracy", "longPassing", "vision",
	"acceleration", "sprintSpeed", "agility", "reactions", "balance",
	"shotPower", "jumping", "stamina", "strength", "longShots",
	"aggression", "interceptions", "positioning", "penalties", "composure",
}

// skillKeyMap translates dataset skill keys to canonical skill names. Keys
// already matching a canonical name pass through unchanged; anything else is
// dropped. dribbling and defensive_awareness intentionally collapse onto
// ballControl and interceptions — the dataset distinguishes them, the
// canonical shape does not.
var skillKeyMap = map[string]string{
	"short_passing":       "shortPassing",
	"long_passing":        "longPassing",
	"fk_accuracy":         "fkAccuracy",
	"ball_control":        "ballControl",
	"sprint_speed":        "sprintSpeed",
	"shot_power":          "shotPower",
	"long_shots":          "longShots",
	"heading_accuracy":    "headingAccuracy",
	"defensive_awareness": "interceptions",
	"dribbling":           "ballControl",
}

var canonicalSkills = func() map[string]bool {
	m := make(map[string]bool, len(SkillNames))
	for _, name := range SkillNames {
		m[name] = true
	}
	return m
}()

// canonicalSkillKey maps a dataset skill key to its canonical name, or ""
// when the key has no canonical counterpart.
func canonicalSkillKey(key string) string {
	if mapped, ok := skillKeyMap[key]; ok {
		return mapped
	}
	if canonicalSkills[key] {
		return key
	}
	return ""
}

// newDefaultSkills returns the full 25-key skill map, every value defaulted.
func newDefaultSkills() map[string]int {
	skills := make(map[string]int, len(SkillNames))
	for _, name := range SkillNames {
		skills[name] = defaultSkillValue
	}
	return skills
}

// RawRating is one record of the bulk dataset export. Field types are
// deliberately loose: exports are inconsistent about numerics (plain numbers,
// digit strings, occasionally nested objects), so scalar fields decode as
// `any` and are coerced through extractNumber.
type RawRating struct {
	ID             any                       `json:"id"`
	Name           string                    `json:"name"`
	Age            any                       `json:"age"`
	Positions      string                    `json:"positions"`
	Overall        any                       `json:"overall"`
	Potential      any                       `json:"potential"`
	HeightCM       any                       `json:"height_cm"`
	WeightKG       any                       `json:"weight_kg"`
	PreferredFoot  string                    `json:"preferred_foot"`
	MainAttributes map[string]any            `json:"main_attributes"`
	DetailedSkills map[string]map[string]any `json:"detailed_skills"`
	WorkRate       string                    `json:"work_rate"`
	WeakFoot       any                       `json:"weak_foot"`
	SkillMoves     any                       `json:"skill_moves"`
	Nationality    string                    `json:"nationality"`
}

// PlayerRating is the canonical, fully-defaulted rating shape all matching
// and display operates on. Entries stored in a Store are never mutated;
// enrichment merges onto a copy.
type PlayerRating struct {
	Overall     int            `json:"overall"`
	Potential   int            `json:"potential"`
	Positions   []string       `json:"positions"`
	Age         int            `json:"age"`
	Height      int            `json:"height"`
	Weight      int            `json:"weight"`
	Foot        string         `json:"foot"`
	Pace        int            `json:"pace"`
	Shooting    int            `json:"shooting"`
	Passing     int            `json:"passing"`
	Dribbling   int            `json:"dribbling"`
	Defending   int            `json:"defending"`
	Physical    int            `json:"physical"`
	Skills      map[string]int `json:"skills"`
	WorkRates   string         `json:"workrates"`
	WeakFoot    int            `json:"weakFoot"`
	SkillMoves  int            `json:"skillMoves"`
	Nationality string         `json:"nationality"`
	Club        string         `json:"club"`
	Value       string         `json:"value"`
	Wage        string         `json:"wage"`
	Contract    string         `json:"contract"`
	SofifaID    *int           `json:"sofifaId,omitempty"`
	SofifaURL   string         `json:"sofifaUrl,omitempty"`
}

// clone returns a deep copy safe to mutate independently of the store entry.
func (r PlayerRating) clone() PlayerRating {
	out := r
	out.Positions = append([]string(nil), r.Positions...)
	out.Skills = make(map[string]int, len(r.Skills))
	for k, v := range r.Skills {
		out.Skills[k] = v
	}
	if r.SofifaID != nil {
		id := *r.SofifaID
		out.SofifaID = &id
	}
	return out
}

// transformRating converts one raw dataset record into the canonical shape.
// now supplies the reference year for birth-year correction.
func transformRating(raw RawRating, now time.Time) (string, PlayerRating, error) {
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		return "", PlayerRating{}, fmt.Errorf("record has no name")
	}

	rating := PlayerRating{
		Overall:     numberOr(raw.Overall, defaultSkillValue),
		Potential:   numberOr(raw.Potential, defaultSkillValue),
		Positions:   splitPositions(raw.Positions),
		Age:         defaultAge,
		Height:      numberOr(raw.HeightCM, defaultHeightCM),
		Weight:      numberOr(raw.WeightKG, defaultWeightKG),
		Foot:        stringOr(raw.PreferredFoot, defaultFoot),
		Pace:        attributeOr(raw.MainAttributes, "pace"),
		Shooting:    attributeOr(raw.MainAttributes, "shooting"),
		Passing:     attributeOr(raw.MainAttributes, "passing"),
		Dribbling:   attributeOr(raw.MainAttributes, "dribbling"),
		Defending:   attributeOr(raw.MainAttributes, "defending"),
		Physical:    attributeOr(raw.MainAttributes, "physical"),
		Skills:      newDefaultSkills(),
		WorkRates:   stringOr(raw.WorkRate, defaultWorkRates),
		WeakFoot:    numberOr(raw.WeakFoot, defaultStars),
		SkillMoves:  numberOr(raw.SkillMoves, defaultStars),
		Nationality: stringOr(raw.Nationality, "Unknown"),
		Club:        "Unknown",
		Value:       "N/A",
		Wage:        "N/A",
		Contract:    "N/A",
	}

	// Some exports carry a birth year in the age column. Anything strictly
	// between 1900 and 2010 is treated as one and converted.
	if v, ok := extractNumber(raw.Age); ok {
		age := int(v)
		if age > 1900 && age < 2010 {
			age = now.Year() - age
		}
		rating.Age = age
	}

	// Flatten detailed_skills: every numeric field in every sub-category,
	// keyed through the translation table. Unmapped keys are dropped.
	for _, category := range raw.DetailedSkills {
		for key, val := range category {
			num, ok := extractNumber(val)
			if !ok {
				continue
			}
			if canonical := canonicalSkillKey(key); canonical != "" {
				rating.Skills[canonical] = int(num)
			}
		}
	}

	if v, ok := extractNumber(raw.ID); ok {
		id := int(v)
		rating.SofifaID = &id
		rating.SofifaURL = fmt.Sprintf(sofifaPlayerURLFormat, id)
	}

	return name, rating, nil
}

// splitPositions splits a comma-separated position string into trimmed
// tokens, defaulting to ["Unknown"] when the field is absent or empty.
func splitPositions(s string) []string {
	var out []string
	for _, tok := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(tok); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"Unknown"}
	}
	return out
}

// extractNumber coerces a decoded JSON value to a float64. Handles plain
// numbers, digit strings, and nested objects like {"total": 82}.
func extractNumber(val any) (float64, bool) {
	switch v := val.(type) {
	case nil:
		return 0, false
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f, true
		}
		return 0, false
	case map[string]any:
		for _, key := range []string{"total", "value", "average"} {
			if inner, exists := v[key]; exists && inner != nil {
				return extractNumber(inner)
			}
		}
		return 0, false
	default:
		return 0, false
	}
}

func numberOr(val any, fallback int) int {
	if v, ok := extractNumber(val); ok {
		return int(v)
	}
	return fallback
}

func attributeOr(attrs map[string]any, key string) int {
	if attrs == nil {
		return defaultSkillValue
	}
	return numberOr(attrs[key], defaultSkillValue)
}

func stringOr(s, fallback string) string {
	if trimmed := strings.TrimSpace(s); trimmed != "" {
		return trimmed
	}
	return fallback
}

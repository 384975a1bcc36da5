package ratings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var transformNow = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

func TestTransformBirthYearCorrection(t *testing.T) {
	tests := []struct {
		name     string
		age      any
		expected int
	}{
		{"birth year converts", float64(2000), 26},
		{"true age unchanged", float64(23), 23},
		{"lower bound exclusive", float64(1900), 1900},
		{"upper bound exclusive", float64(2010), 2010},
		{"just inside window", float64(1901), 125},
		{"digit string coerces", "1998", 28},
		{"absent defaults", nil, defaultAge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, rating, err := transformRating(RawRating{Name: "Test Player", Age: tt.age}, transformNow)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, rating.Age)
		})
	}
}

func TestTransformDefaults(t *testing.T) {
	name, rating, err := transformRating(RawRating{Name: "Bare Player"}, transformNow)
	require.NoError(t, err)

	assert.Equal(t, "Bare Player", name)
	assert.Equal(t, []string{"Unknown"}, rating.Positions)
	assert.Equal(t, defaultSkillValue, rating.Overall)
	assert.Equal(t, defaultSkillValue, rating.Potential)
	assert.Equal(t, defaultHeightCM, rating.Height)
	assert.Equal(t, defaultWeightKG, rating.Weight)
	assert.Equal(t, "Right", rating.Foot)
	assert.Equal(t, "Medium/Medium", rating.WorkRates)
	assert.Equal(t, defaultStars, rating.WeakFoot)
	assert.Equal(t, defaultStars, rating.SkillMoves)
	assert.Equal(t, "Unknown", rating.Nationality)

	for _, attr := range []int{rating.Pace, rating.Shooting, rating.Passing,
		rating.Dribbling, rating.Defending, rating.Physical} {
		assert.Equal(t, defaultSkillValue, attr)
	}

	require.Len(t, rating.Skills, 25)
	for _, skillName := range SkillNames {
		assert.Equal(t, defaultSkillValue, rating.Skills[skillName], "skill %s", skillName)
	}

	assert.Nil(t, rating.SofifaID)
	assert.Empty(t, rating.SofifaURL)
}

func TestTransformPositions(t *testing.T) {
	_, rating, err := transformRating(RawRating{Name: "P", Positions: "ST, LW ,RW"}, transformNow)
	require.NoError(t, err)
	assert.Equal(t, []string{"ST", "LW", "RW"}, rating.Positions)
}

func TestTransformSkillMapping(t *testing.T) {
	raw := RawRating{
		Name: "Skilled Player",
		DetailedSkills: map[string]map[string]any{
			"technical": {
				"short_passing": float64(80),
				"ball_control":  float64(88),
				"crossing":      float64(71),
				"made_up_skill": float64(99), // unmapped, dropped
			},
			"defending": {
				"defensive_awareness": float64(42),
			},
			"mental": {
				"composure": "85", // digit string coerces
				"vision":    nil,  // non-numeric, ignored
			},
		},
	}
	_, rating, err := transformRating(raw, transformNow)
	require.NoError(t, err)

	assert.Equal(t, 80, rating.Skills["shortPassing"])
	assert.Equal(t, 88, rating.Skills["ballControl"])
	assert.Equal(t, 71, rating.Skills["crossing"])
	assert.Equal(t, 85, rating.Skills["composure"])
	assert.Equal(t, defaultSkillValue, rating.Skills["vision"])
	// Lossy merge: defensive_awareness lands on interceptions.
	assert.Equal(t, 42, rating.Skills["interceptions"])
	// Unmapped keys never appear.
	assert.NotContains(t, rating.Skills, "made_up_skill")
	assert.Len(t, rating.Skills, 25)
}

func TestTransformDribblingCollapsesOntoBallControl(t *testing.T) {
	raw := RawRating{
		Name: "P",
		DetailedSkills: map[string]map[string]any{
			"technical": {"dribbling": float64(91)},
		},
	}
	_, rating, err := transformRating(raw, transformNow)
	require.NoError(t, err)
	assert.Equal(t, 91, rating.Skills["ballControl"])
}

func TestTransformMainAttributes(t *testing.T) {
	raw := RawRating{
		Name: "P",
		MainAttributes: map[string]any{
			"pace":     float64(90),
			"shooting": float64(85),
			// passing absent
			"dribbling": "87",
			"defending": float64(40),
			"physical":  float64(78),
		},
	}
	_, rating, err := transformRating(raw, transformNow)
	require.NoError(t, err)
	assert.Equal(t, 90, rating.Pace)
	assert.Equal(t, 85, rating.Shooting)
	assert.Equal(t, defaultSkillValue, rating.Passing)
	assert.Equal(t, 87, rating.Dribbling)
	assert.Equal(t, 40, rating.Defending)
	assert.Equal(t, 78, rating.Physical)
}

func TestTransformSofifaID(t *testing.T) {
	_, rating, err := transformRating(RawRating{Name: "P", ID: float64(239085)}, transformNow)
	require.NoError(t, err)
	require.NotNil(t, rating.SofifaID)
	assert.Equal(t, 239085, *rating.SofifaID)
	assert.Equal(t, "https://sofifa.com/player/239085", rating.SofifaURL)

	_, rating, err = transformRating(RawRating{Name: "P", ID: "not-a-number"}, transformNow)
	require.NoError(t, err)
	assert.Nil(t, rating.SofifaID)
	assert.Empty(t, rating.SofifaURL)
}

func TestTransformRejectsNamelessRecord(t *testing.T) {
	_, _, err := transformRating(RawRating{Name: "   "}, transformNow)
	assert.Error(t, err)
}

func TestExtractNumber(t *testing.T) {
	tests := []struct {
		name     string
		in       any
		expected float64
		ok       bool
	}{
		{"float", float64(82), 82, true},
		{"int", 7, 7, true},
		{"digit string", " 91 ", 91, true},
		{"word string", "high", 0, false},
		{"nested total", map[string]any{"total": float64(12)}, 12, true},
		{"nested value", map[string]any{"value": "65"}, 65, true},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractNumber(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	_, rating, err := transformRating(RawRating{Name: "P", Positions: "ST"}, transformNow)
	require.NoError(t, err)

	copied := rating.clone()
	copied.Skills["finishing"] = 99
	copied.Positions[0] = "GK"

	assert.Equal(t, defaultSkillValue, rating.Skills["finishing"])
	assert.Equal(t, "ST", rating.Positions[0])
}

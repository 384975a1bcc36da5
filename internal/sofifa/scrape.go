package sofifa

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/touchline/touchline-data/internal/ratings"
)

// Selectors below target the player page layout:
//
//	<div class="profile"><h1>NAME</h1><p class="meta">ST LW 26y.o. 182cm / 75kg</p></div>
//	<div class="grid ratings"><div class="col"><em title="Overall rating">91</em>...</div>...</div>
//	<div class="grid attributes"><div class="col"><em>97</em><span>Pace</span></div>...</div>
//	<div class="profile-info"><ul><li><label>Preferred foot</label> Right</li>...</ul></div>
//	<div class="skills"><ul><li><em>93</em><span>Finishing</span></li>...</ul></div>

var (
	ageRe    = regexp.MustCompile(`(\d+)y\.o\.`)
	heightRe = regexp.MustCompile(`(\d+)cm`)
	weightRe = regexp.MustCompile(`(\d+)kg`)
)

var knownSkills = func() map[string]bool {
	m := make(map[string]bool, len(ratings.SkillNames))
	for _, name := range ratings.SkillNames {
		m[name] = true
	}
	return m
}()

// parsePlayerPage scrapes one player page into a LiveRating. Fields missing
// from the page stay nil; only the page failing to expose a profile at all
// is an error.
func parsePlayerPage(body io.Reader) (*ratings.LiveRating, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	if doc.Find("div.profile h1").Length() == 0 {
		return nil, fmt.Errorf("no player profile found in page")
	}

	live := &ratings.LiveRating{}
	parseMetaLine(doc, live)
	parseRatingCards(doc, live)
	parseAttributes(doc, live)
	parseProfileInfo(doc, live)
	parseSkills(doc, live)
	return live, nil
}

// parseMetaLine extracts positions, age, height, and weight from the header
// line, e.g. "ST LW 26y.o. 182cm / 75kg".
func parseMetaLine(doc *goquery.Document, live *ratings.LiveRating) {
	meta := strings.TrimSpace(doc.Find("div.profile p.meta").First().Text())
	if meta == "" {
		return
	}

	if m := ageRe.FindStringSubmatch(meta); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			live.Age = &v
		}
	}
	if m := heightRe.FindStringSubmatch(meta); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			live.Height = &v
		}
	}
	if m := weightRe.FindStringSubmatch(meta); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			live.Weight = &v
		}
	}

	// Position codes precede the age token.
	for _, tok := range strings.Fields(meta) {
		if ageRe.MatchString(tok) {
			break
		}
		live.Positions = append(live.Positions, tok)
	}
}

// parseRatingCards reads the headline cards: overall, potential, value, wage.
func parseRatingCards(doc *goquery.Document, live *ratings.LiveRating) {
	doc.Find("div.ratings em[title]").Each(func(_ int, s *goquery.Selection) {
		title, _ := s.Attr("title")
		text := strings.TrimSpace(s.Text())
		switch title {
		case "Overall rating":
			if v, err := strconv.Atoi(text); err == nil {
				live.Overall = &v
			}
		case "Potential":
			if v, err := strconv.Atoi(text); err == nil {
				live.Potential = &v
			}
		case "Value":
			if text != "" {
				live.Value = &text
			}
		case "Wage":
			if text != "" {
				live.Wage = &text
			}
		}
	})
}

// parseAttributes reads the six main attribute columns.
func parseAttributes(doc *goquery.Document, live *ratings.LiveRating) {
	doc.Find("div.attributes div.col").Each(func(_ int, s *goquery.Selection) {
		label := strings.TrimSpace(s.Find("span").Text())
		v, err := strconv.Atoi(strings.TrimSpace(s.Find("em").Text()))
		if err != nil {
			return
		}
		switch label {
		case "Pace":
			live.Pace = &v
		case "Shooting":
			live.Shooting = &v
		case "Passing":
			live.Passing = &v
		case "Dribbling":
			live.Dribbling = &v
		case "Defending":
			live.Defending = &v
		case "Physical":
			live.Physical = &v
		}
	})
}

// parseProfileInfo reads labelled rows like "Preferred foot Right".
func parseProfileInfo(doc *goquery.Document, live *ratings.LiveRating) {
	doc.Find("div.profile-info li").Each(func(_ int, s *goquery.Selection) {
		label := strings.TrimSpace(s.Find("label").Text())
		value := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s.Text()), label))
		if value == "" {
			return
		}
		switch label {
		case "Preferred foot":
			live.Foot = &value
		case "Work rate":
			live.WorkRates = &value
		case "Weak foot":
			if v, err := strconv.Atoi(value); err == nil {
				live.WeakFoot = &v
			}
		case "Skill moves":
			if v, err := strconv.Atoi(value); err == nil {
				live.SkillMoves = &v
			}
		case "Club":
			live.Club = &value
		case "Contract":
			live.Contract = &value
		}
	})
}

// parseSkills reads named sub-skill rows, keeping only canonical skill names.
func parseSkills(doc *goquery.Document, live *ratings.LiveRating) {
	doc.Find("div.skills li").Each(func(_ int, s *goquery.Selection) {
		label := strings.TrimSpace(s.Find("span").Text())
		v, err := strconv.Atoi(strings.TrimSpace(s.Find("em").Text()))
		if err != nil {
			return
		}
		key := skillLabelToKey(label)
		if !knownSkills[key] {
			return
		}
		if live.Skills == nil {
			live.Skills = make(map[string]int)
		}
		live.Skills[key] = v
	})
}

// skillLabelToKey converts a display label to its canonical camelCase key,
// e.g. "FK Accuracy" -> "fkAccuracy", "Finishing" -> "finishing".
func skillLabelToKey(label string) string {
	words := strings.Fields(label)
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(strings.ToLower(words[0]))
	for _, w := range words[1:] {
		b.WriteString(strings.ToUpper(w[:1]))
		b.WriteString(strings.ToLower(w[1:]))
	}
	return b.String()
}

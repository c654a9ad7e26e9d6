package dashboard

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/dmitrijs2005/myadmin/internal/client/models"
)

// Counts are the collection sizes every widget derives from.
type Counts struct {
	Skills     int
	Schools    int
	Degrees    int
	Subjects   int
	Categories int
	Users      int
}

// Total sums the reference collections; users are not counted.
func (c Counts) Total() int {
	return c.Skills + c.Schools + c.Degrees + c.Subjects + c.Categories
}

type Bar struct {
	Label  string
	Height int
}

type ProgressItem struct {
	Label string
	Value int
}

type Summary struct {
	DataAccuracy string
	TotalRecords string
}

type StatCard struct {
	Label  string
	Value  int
	Change float64
	Icon   string
	IconBg string
}

type QuickAction struct {
	Label    string
	Sub      string
	Icon     string
	Resource string
}

// Goals the progress bars measure against.
const (
	SkillsGoal   = 50
	SchoolsGoal  = 20
	DegreesGoal  = 10
	SubjectsGoal = 30
)

func BarChart(c Counts) []Bar {
	return []Bar{
		{Label: "Skills", Height: c.Skills},
		{Label: "Schools", Height: c.Schools},
		{Label: "Degrees", Height: c.Degrees},
		{Label: "Subjects", Height: c.Subjects},
		{Label: "Categories", Height: c.Categories},
	}
}

func Progress(c Counts) []ProgressItem {
	return []ProgressItem{
		{Label: "Skills Goal", Value: percentOf(c.Skills, SkillsGoal)},
		{Label: "Schools Goal", Value: percentOf(c.Schools, SchoolsGoal)},
		{Label: "Degrees Goal", Value: percentOf(c.Degrees, DegreesGoal)},
		{Label: "Subjects Goal", Value: percentOf(c.Subjects, SubjectsGoal)},
	}
}

// percentOf is round(n/goal*100) capped at 100.
func percentOf(n, goal int) int {
	v := int(math.Round(float64(n) / float64(goal) * 100))
	return min(v, 100)
}

func SummaryOf(c Counts) Summary {
	return Summary{DataAccuracy: "100%", TotalRecords: FormatTotal(c.Total())}
}

// FormatTotal renders totals above 1000 in thousands ("1.2k").
func FormatTotal(total int) string {
	if total > 1000 {
		return fmt.Sprintf("%.1fk", float64(total)/1000)
	}
	return strconv.Itoa(total)
}

func StatCards(c Counts) []StatCard {
	return []StatCard{
		{Label: "Total Skills", Value: c.Skills, Change: 12.5, Icon: "bi-lightbulb-fill", IconBg: "blue"},
		{Label: "Total Schools", Value: c.Schools, Change: 8.2, Icon: "bi-building-fill", IconBg: "purple"},
		{Label: "Total Degrees", Value: c.Degrees, Change: 3.1, Icon: "bi-mortarboard-fill", IconBg: "green"},
		{Label: "Total Categories", Value: c.Categories, Change: 15.3, Icon: "bi-folder-fill", IconBg: "yellow"},
	}
}

func QuickActions() []QuickAction {
	return []QuickAction{
		{Label: "Add Skill", Sub: "Create new skill", Icon: "bi-lightbulb", Resource: Skills},
		{Label: "Add School", Sub: "Register school", Icon: "bi-building", Resource: Schools},
		{Label: "Add Degree", Sub: "New degree type", Icon: "bi-mortarboard", Resource: Degrees},
		{Label: "Add Subject", Sub: "Create subject", Icon: "bi-journal", Resource: Subjects},
		{Label: "Add Category", Sub: "New category", Icon: "bi-folder-plus", Resource: Categories},
	}
}

// NewestFirst sorts a copy of records by the timestamp under key,
// descending, and keeps at most n. Records without a parseable timestamp
// go last.
func NewestFirst(records []models.Record, key string, n int) []models.Record {
	out := append([]models.Record(nil), records...)
	sort.SliceStable(out, func(i, j int) bool {
		ti, iok := out[i].Time(key)
		tj, jok := out[j].Time(key)
		if iok != jok {
			return iok
		}
		return ti.After(tj)
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

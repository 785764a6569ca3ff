package model

import (
	"fmt"
	"strings"
	"time"
)

// Template names, in the order their sources appear on the checklists page.
const (
	TemplateWeekday  = "Weekday"
	TemplateSaturday = "Saturday"
	TemplateSunday   = "Sunday"
)

// TemplateNames is the fixed ordering of template sources.
var TemplateNames = []string{TemplateWeekday, TemplateSaturday, TemplateSunday}

// ChecklistItem is one line of a daily template.
type ChecklistItem struct {
	Text string
}

// ChecklistTemplate is the list of items to put on the today page.
type ChecklistTemplate struct {
	Name  string
	Items []ChecklistItem
}

// TemplateIndex picks the template source for a day: Saturday and Sunday
// have their own, every other day uses the weekday one.
func TemplateIndex(day time.Weekday) int {
	switch day {
	case time.Saturday:
		return 1
	case time.Sunday:
		return 2
	default:
		return 0
	}
}

// ParseWeekday accepts a full English weekday name in any case.
func ParseWeekday(name string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(name, d.String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", name)
}

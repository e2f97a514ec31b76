package celcat

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// DateTimeLayout is the zone-less timestamp format used by Celcat in both directions
const DateTimeLayout = "2006-01-02T15:04:05"

// ResourceType identifies a family of Celcat resources
type ResourceType int

// Resource types known to Celcat
const (
	ResourceModule  ResourceType = 100
	ResourceTeacher ResourceType = 101
	ResourceRoom    ResourceType = 102
	ResourceGroup   ResourceType = 103
	ResourceStudent ResourceType = 104
)

// Valid reports whether t is one of the known resource types
func (t ResourceType) Valid() bool {
	return t >= ResourceModule && t <= ResourceStudent
}

// String returns the numeric form sent in form bodies
func (t ResourceType) String() string {
	return strconv.Itoa(int(t))
}

// EntityType is either unknown (0) or a resource type
type EntityType int

// EntityUnknown is the entity type of elements that do not point to a resource
const EntityUnknown EntityType = 0

// Resource returns the resource type and whether the entity is a resource
func (e EntityType) Resource() (ResourceType, bool) {
	rt := ResourceType(e)
	return rt, rt.Valid()
}

// UnmarshalJSON accepts null, 0 and the known resource type numbers
func (e *EntityType) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*e = EntityUnknown
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("entity type: %w", err)
	}
	if n != 0 && !ResourceType(n).Valid() {
		return fmt.Errorf("entity type: unexpected value %d, want 0 or 100-104", n)
	}
	*e = EntityType(n)
	return nil
}

// DateTime is a Celcat timestamp. Celcat does not send a zone; values are read as UTC.
type DateTime struct {
	time.Time
}

// UnmarshalJSON parses the Celcat layout, leaving the zero time for null
func (d *DateTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse(DateTimeLayout, s)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// Course is one entry of a calendar
type Course struct {
	ID              string    `json:"id"`
	Start           DateTime  `json:"start"`
	End             *DateTime `json:"end"`
	AllDay          bool      `json:"allDay"`
	Description     string    `json:"description"`
	BackgroundColor string    `json:"backgroundColor"`
	TextColor       string    `json:"textColor"`
	Department      *string   `json:"department"`
	Faculty         *string   `json:"faculty"`
	EventCategory   *string   `json:"eventCategory"`
	Sites           []string  `json:"sites"`
	Modules         []string  `json:"modules"`
	RegisterStatus  int64     `json:"registerStatus"`
	StudentMark     int64     `json:"studentMark"`
}

// EndTime returns the end of the course or nil when Celcat did not send one
func (c *Course) EndTime() *time.Time {
	if c.End == nil || c.End.IsZero() {
		return nil
	}
	t := c.End.Time
	return &t
}

// CalendarView is the calendar layout requested from Celcat
type CalendarView string

// Calendar views accepted by GetCalendarData
const (
	ViewMonth      CalendarView = "month"
	ViewAgendaWeek CalendarView = "agendaWeek"
	ViewAgendaDay  CalendarView = "agendaDay"
	ViewListWeek   CalendarView = "listWeek"
)

// CalendarRequest selects the calendar of one resource over a time window
type CalendarRequest struct {
	Start         time.Time
	End           time.Time
	ResourceType  ResourceType
	View          CalendarView
	FederationIDs string
	ColourScheme  int
}

// Label names the kind of an event detail element
type Label int

// Labels of event detail elements. Anything not listed decodes to LabelUnknown.
const (
	LabelUnknown Label = iota
	LabelTime
	LabelCategory
	LabelModule
	LabelRoom
	LabelTeacher
	LabelGrades
	LabelName
)

var labelNames = map[string]Label{
	"Time":       LabelTime,
	"Catégorie":  LabelCategory,
	"Matière":    LabelModule,
	"Salle":      LabelRoom,
	"Enseignant": LabelTeacher,
	"Notes":      LabelGrades,
	"Name":       LabelName,
}

// UnmarshalJSON maps the French label text to a Label
func (l *Label) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("element label: %w", err)
	}
	*l = labelNames[s]
	return nil
}

// String returns a stable English name for logs
func (l Label) String() string {
	switch l {
	case LabelTime:
		return "time"
	case LabelCategory:
		return "category"
	case LabelModule:
		return "module"
	case LabelRoom:
		return "room"
	case LabelTeacher:
		return "teacher"
	case LabelGrades:
		return "grades"
	case LabelName:
		return "name"
	default:
		return "unknown"
	}
}

// Element is one labeled line of an event side bar
type Element struct {
	Label              Label      `json:"label"`
	Content            *string    `json:"content"`
	FederationID       *string    `json:"federationId"`
	EntityType         EntityType `json:"entityType"`
	AssignmentContext  *string    `json:"assignmentContext"`
	ContainsHyperlinks bool       `json:"containsHyperlinks"`
	IsNotes            bool       `json:"isNotes"`
	IsStudentSpecific  bool       `json:"isStudentSpecific"`
}

// Event is the detail record of one course
type Event struct {
	FederationID *string    `json:"federationId"`
	EntityType   EntityType `json:"entityType"`
	Elements     []Element  `json:"elements"`
}

// Details holds the descriptive fields carried by an event
type Details struct {
	Category    *string
	Module      *string
	Room        *string
	Teacher     *string
	Description *string
}

// Details folds the elements into course fields. The last element of a given label wins.
func (e *Event) Details() Details {
	var d Details
	for _, el := range e.Elements {
		switch el.Label {
		case LabelCategory:
			d.Category = el.Content
		case LabelModule:
			d.Module = el.Content
		case LabelRoom:
			d.Room = el.Content
		case LabelTeacher:
			d.Teacher = el.Content
		case LabelName:
			d.Description = el.Content
		case LabelUnknown, LabelTime, LabelGrades:
		}
	}
	return d
}

// ResourceListRequest pages through the resources of one type
type ResourceListRequest struct {
	MyResources  bool
	SearchTerm   string
	PageSize     int
	PageNumber   int
	ResourceType ResourceType
}

// Resource is a raw resource list entry
type Resource struct {
	ID         string  `json:"id"`
	Text       string  `json:"text"`
	Department *string `json:"dept"`
}

// ResourceList is one page of resources
type ResourceList struct {
	Total   int64      `json:"total"`
	Results []Resource `json:"results"`
}

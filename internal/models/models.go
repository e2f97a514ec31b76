// Package models contains the domain types persisted by the synchronization
// pipeline and served by the API.
package models

import "time"

// CourseRecord is the persisted projection of a timetable course.
// Descriptive fields are nil when the remote detail record did not carry them.
type CourseRecord struct {
	ID          string     `json:"id"`
	Start       time.Time  `json:"start"`
	End         *time.Time `json:"end,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Module      *string    `json:"module,omitempty"`
	Room        *string    `json:"room,omitempty"`
	Teacher     *string    `json:"teacher,omitempty"`
	Description *string    `json:"description,omitempty"`
}

// Group is a set of students sharing a timetable.
// Referent is the Celcat student number used to fetch the group's calendar.
type Group struct {
	ID       int32  `json:"id"`
	Name     string `json:"name"`
	Referent *int64 `json:"referent,omitempty"`
	Parent   *int32 `json:"parent,omitempty"`
	Private  bool   `json:"private"`
}

// GroupReferent pairs a group with the student whose calendar represents it.
type GroupReferent struct {
	GroupID  int32
	Referent string
}

// User is an account of the API.
type User struct {
	ID        int64  `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"-"`
}

// Student is a student known to Celcat.
type Student struct {
	ID         int64
	Firstname  string
	Lastname   string
	Department *string
}

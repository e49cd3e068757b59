package models

import (
	"fmt"
	"time"
)

// CardStatus is the workflow status of a card. There is no transition
// machine: any status may follow any other via PUT/PATCH.
type CardStatus string

const (
	StatusTodo       CardStatus = "TODO"
	StatusInProgress CardStatus = "IN_PROGRESS"
	StatusDone       CardStatus = "DONE"
)

// ParseCardStatus matches the enumeration names case-sensitively.
func ParseCardStatus(s string) (CardStatus, error) {
	switch CardStatus(s) {
	case StatusTodo, StatusInProgress, StatusDone:
		return CardStatus(s), nil
	}
	return "", fmt.Errorf("unrecognized card status: %s", s)
}

type Card struct {
	ID                   uint       `gorm:"primaryKey" json:"id"`
	Name                 string     `gorm:"size:50;not null" json:"name"`
	Description          string     `gorm:"size:100" json:"description,omitempty"`
	Color                string     `gorm:"size:7" json:"color,omitempty"`
	Status               CardStatus `gorm:"size:11;not null;default:TODO" json:"status"`
	CreatedBy            string     `gorm:"size:50;not null;index" json:"createdBy"`
	CreatedDateTime      time.Time  `json:"createdDateTime"`
	LastModifiedBy       string     `gorm:"size:50" json:"lastModifiedBy,omitempty"`
	LastModifiedDateTime time.Time  `json:"lastModifiedDateTime"`
}

// Recognized aggregate-get filter keys.
const (
	FilterName      = "name"
	FilterColor     = "color"
	FilterStatus    = "status"
	FilterBeginDate = "begin_date_created"
	FilterEndDate   = "end_date_created"
	FilterCreatedBy = "created_by"
)

// sortableFields maps the card's payload field names to their DB columns.
// Kept as a static allow-list next to the model so a sort request can never
// reference a column that does not exist.
var sortableFields = []struct {
	field  string
	column string
}{
	{"id", "id"},
	{"name", "name"},
	{"description", "description"},
	{"color", "color"},
	{"status", "status"},
	{"createdBy", "created_by"},
	{"createdDateTime", "created_date_time"},
	{"lastModifiedBy", "last_modified_by"},
	{"lastModifiedDateTime", "last_modified_date_time"},
}

// SortableColumn resolves a payload field name to its DB column.
func SortableColumn(field string) (string, bool) {
	for _, f := range sortableFields {
		if f.field == field {
			return f.column, true
		}
	}
	return "", false
}

// SortableFieldNames returns the valid sort field names in declaration order.
func SortableFieldNames() []string {
	names := make([]string, len(sortableFields))
	for i, f := range sortableFields {
		names[i] = f.field
	}
	return names
}

package query

import (
	"time"

	"cardsapi/app/access"
	"cardsapi/app/apperrors"
	"cardsapi/app/models"

	"gorm.io/gorm"
)

// CreatedDateTimeLayout is the fixed dd/MM/yyyy HH:mm:ss.SSS pattern the
// creation-date filters are expressed in. Literals are zone-less and are
// interpreted in server-local time, the same clock the audit timestamps
// are stamped with.
const CreatedDateTimeLayout = "02/01/2006 15:04:05.000"

// Predicate is a single column condition. A compiled filter is evaluated as
// the conjunction of its predicates; the vocabulary needs no disjunction or
// negation.
type Predicate struct {
	Column string
	Op     string
	Value  any
}

func (p Predicate) apply(tx *gorm.DB) *gorm.DB {
	return tx.Where(p.Column+" "+p.Op+" ?", p.Value)
}

// ApplyPredicates chains every predicate onto the query as an AND condition.
func ApplyPredicates(tx *gorm.DB, preds []Predicate) *gorm.DB {
	for _, p := range preds {
		tx = p.apply(tx)
	}
	return tx
}

// Compiler turns a filter map plus the acting user's scope into predicates.
type Compiler struct {
	Access access.Policy
}

// Compile builds the predicate conjunction for the filters. For non-admin
// actors an ownership predicate on created_by is always appended; a member
// filtering by another user's identity must have been rejected by the
// service before this point, so compilation never has to encode "forbidden"
// as an unsatisfiable filter.
func (c Compiler) Compile(actor models.Actor, filters map[string]string) ([]Predicate, error) {
	var preds []Predicate

	if name, ok := filters[models.FilterName]; ok {
		preds = append(preds, Predicate{Column: "name", Op: "=", Value: name})
	}
	if color, ok := filters[models.FilterColor]; ok {
		preds = append(preds, Predicate{Column: "color", Op: "=", Value: color})
	}
	if raw, ok := filters[models.FilterStatus]; ok {
		status, err := models.ParseCardStatus(raw)
		if err != nil {
			return nil, &apperrors.ValidationError{Violations: []string{err.Error()}}
		}
		preds = append(preds, Predicate{Column: "status", Op: "=", Value: status})
	}
	if raw, ok := filters[models.FilterBeginDate]; ok {
		from, err := time.ParseInLocation(CreatedDateTimeLayout, raw, time.Local)
		if err != nil {
			return nil, &apperrors.BadDateFormatError{Msg: err.Error()}
		}
		preds = append(preds, Predicate{Column: "created_date_time", Op: ">=", Value: from})
	}
	if raw, ok := filters[models.FilterEndDate]; ok {
		to, err := time.ParseInLocation(CreatedDateTimeLayout, raw, time.Local)
		if err != nil {
			return nil, &apperrors.BadDateFormatError{Msg: err.Error()}
		}
		preds = append(preds, Predicate{Column: "created_date_time", Op: "<=", Value: to})
	}
	if creator, ok := filters[models.FilterCreatedBy]; ok {
		preds = append(preds, Predicate{Column: "created_by", Op: "=", Value: creator})
	}

	if !c.Access.IsAdmin(actor) {
		preds = append(preds, Predicate{Column: "created_by", Op: "=", Value: actor.Email})
	}
	return preds, nil
}

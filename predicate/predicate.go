// Package predicate composes matching conditions over offices. A condition
// can be evaluated against an office in memory or rendered into a gorm
// expression for the office listing query; both agree on every office.
package predicate

import (
	"fmt"
	"strings"

	"github.com/candidatos-info/civic-enrichers/civic"
	"gorm.io/gorm/clause"
)

// Field is an office column a condition can constrain.
type Field string

const (
	State            Field = "state"
	County           Field = "county"
	ElectionScope    Field = "election_scope"
	DistrictType     Field = "district_type"
	District         Field = "district"
	Seat             Field = "seat"
	SchoolDistrict   Field = "school_district"
	HospitalDistrict Field = "hospital_district"
	Municipality     Field = "municipality"
)

var fieldValues = map[Field]func(*civic.Office) string{
	State:            func(o *civic.Office) string { return o.State },
	County:           func(o *civic.Office) string { return o.County },
	ElectionScope:    func(o *civic.Office) string { return string(o.ElectionScope) },
	DistrictType:     func(o *civic.Office) string { return string(o.DistrictType) },
	District:         func(o *civic.Office) string { return o.District },
	Seat:             func(o *civic.Office) string { return o.Seat },
	SchoolDistrict:   func(o *civic.Office) string { return o.SchoolDistrict },
	HospitalDistrict: func(o *civic.Office) string { return o.HospitalDistrict },
	Municipality:     func(o *civic.Office) string { return o.Municipality },
}

func (f Field) value(o *civic.Office) string {
	if get, ok := fieldValues[f]; ok {
		return get(o)
	}
	return ""
}

// Condition is a boolean expression over offices.
type Condition interface {
	Matches(o *civic.Office) bool
	Expression() clause.Expression
	String() string
}

type eq struct {
	field Field
	value string
}

// Eq matches offices whose field equals value.
func Eq(f Field, value string) Condition {
	return eq{field: f, value: value}
}

func (c eq) Matches(o *civic.Office) bool { return c.field.value(o) == c.value }

func (c eq) Expression() clause.Expression {
	return clause.Eq{Column: clause.Column{Name: string(c.field)}, Value: c.value}
}

func (c eq) String() string { return fmt.Sprintf("%s = %q", c.field, c.value) }

type contains struct {
	field Field
	part  string
}

// Contains matches offices whose field contains part, ignoring case. It
// renders to LOWER(field) LIKE '%part%'; LIKE wildcards in part are dropped.
func Contains(f Field, part string) Condition {
	return contains{field: f, part: wildcards.Replace(strings.ToLower(part))}
}

func (c contains) Matches(o *civic.Office) bool {
	return strings.Contains(strings.ToLower(c.field.value(o)), c.part)
}

func (c contains) Expression() clause.Expression {
	return clause.Expr{
		SQL:  fmt.Sprintf("LOWER(%s) LIKE ?", c.field),
		Vars: []interface{}{"%" + c.part + "%"},
	}
}

func (c contains) String() string { return fmt.Sprintf("%s contains %q", c.field, c.part) }

var wildcards = strings.NewReplacer(`%`, ``, `_`, ``)

type all []Condition

// All matches offices that match every condition. All() matches everything.
func All(conds ...Condition) Condition {
	if len(conds) == 1 {
		return conds[0]
	}
	return all(conds)
}

func (c all) Matches(o *civic.Office) bool {
	for _, cond := range c {
		if !cond.Matches(o) {
			return false
		}
	}
	return true
}

func (c all) Expression() clause.Expression {
	if len(c) == 0 {
		return clause.Expr{SQL: "1 = 1"}
	}
	return clause.And(expressions(c)...)
}

func (c all) String() string { return join(c, " AND ") }

type anyOf []Condition

// Any matches offices that match at least one condition. Any() matches nothing.
func Any(conds ...Condition) Condition {
	if len(conds) == 1 {
		return conds[0]
	}
	return anyOf(conds)
}

func (c anyOf) Matches(o *civic.Office) bool {
	for _, cond := range c {
		if cond.Matches(o) {
			return true
		}
	}
	return false
}

func (c anyOf) Expression() clause.Expression {
	if len(c) == 0 {
		return clause.Expr{SQL: "1 = 0"}
	}
	return clause.Or(expressions(c)...)
}

func (c anyOf) String() string { return join(c, " OR ") }

func expressions(conds []Condition) []clause.Expression {
	out := make([]clause.Expression, len(conds))
	for i, c := range conds {
		out[i] = c.Expression()
	}
	return out
}

func join(conds []Condition, sep string) string {
	parts := make([]string, len(conds))
	for i, c := range conds {
		parts[i] = c.String()
	}
	return "(" + strings.Join(parts, sep) + ")"
}

// Filter returns the offices matching c, keeping their order.
func Filter(offices []civic.Office, c Condition) []civic.Office {
	var out []civic.Office
	for i := range offices {
		if c.Matches(&offices[i]) {
			out = append(out, offices[i])
		}
	}
	return out
}

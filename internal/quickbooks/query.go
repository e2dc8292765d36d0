package quickbooks

import (
	"fmt"
	"strconv"
	"strings"
)

// QueryBuilder assembles statements for the QuickBooks query language
// (SELECT * FROM Entity WHERE ... ORDERBY ... MAXRESULTS ...). All string
// literals are escaped, so caller-supplied values cannot break out of the
// statement.
type QueryBuilder struct {
	entity     string
	conditions []string
	orderBy    string
	maxResults int
}

// NewQuery starts a SELECT * statement for the given entity.
func NewQuery(entity string) *QueryBuilder {
	return &QueryBuilder{entity: entity}
}

// WhereEq adds an equality condition against a string literal.
func (q *QueryBuilder) WhereEq(field, value string) *QueryBuilder {
	q.conditions = append(q.conditions, fmt.Sprintf("%s = '%s'", field, escapeValue(value)))
	return q
}

// WhereBool adds an equality condition against an unquoted boolean, as the
// query language expects for fields like Active.
func (q *QueryBuilder) WhereBool(field string, value bool) *QueryBuilder {
	q.conditions = append(q.conditions, fmt.Sprintf("%s = %t", field, value))
	return q
}

// WhereLike adds a substring match (LIKE '%value%').
func (q *QueryBuilder) WhereLike(field, value string) *QueryBuilder {
	q.conditions = append(q.conditions, fmt.Sprintf("%s LIKE '%%%s%%'", field, escapeValue(value)))
	return q
}

// WhereGTE adds a >= comparison against a string literal (dates, quoted
// amounts).
func (q *QueryBuilder) WhereGTE(field, value string) *QueryBuilder {
	q.conditions = append(q.conditions, fmt.Sprintf("%s >= '%s'", field, escapeValue(value)))
	return q
}

// WhereLTE adds a <= comparison against a string literal.
func (q *QueryBuilder) WhereLTE(field, value string) *QueryBuilder {
	q.conditions = append(q.conditions, fmt.Sprintf("%s <= '%s'", field, escapeValue(value)))
	return q
}

// WhereGT adds a > comparison against a string literal.
func (q *QueryBuilder) WhereGT(field, value string) *QueryBuilder {
	q.conditions = append(q.conditions, fmt.Sprintf("%s > '%s'", field, escapeValue(value)))
	return q
}

// WhereAmountGTE adds a >= comparison against an amount. The query language
// wants amounts quoted like string literals.
func (q *QueryBuilder) WhereAmountGTE(field string, value float64) *QueryBuilder {
	return q.WhereGTE(field, formatAmount(value))
}

// WhereAmountLTE adds a <= comparison against an amount.
func (q *QueryBuilder) WhereAmountLTE(field string, value float64) *QueryBuilder {
	return q.WhereLTE(field, formatAmount(value))
}

// OrderByDesc sets a descending ORDERBY clause.
func (q *QueryBuilder) OrderByDesc(field string) *QueryBuilder {
	q.orderBy = field + " DESC"
	return q
}

// MaxResults caps the number of returned rows.
func (q *QueryBuilder) MaxResults(n int) *QueryBuilder {
	q.maxResults = n
	return q
}

// Build renders the statement.
func (q *QueryBuilder) Build() string {
	var sb strings.Builder
	sb.WriteString("SELECT * FROM ")
	sb.WriteString(q.entity)

	if len(q.conditions) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(q.conditions, " AND "))
	}
	if q.orderBy != "" {
		sb.WriteString(" ORDERBY ")
		sb.WriteString(q.orderBy)
	}
	if q.maxResults > 0 {
		sb.WriteString(" MAXRESULTS ")
		sb.WriteString(strconv.Itoa(q.maxResults))
	}
	return sb.String()
}

// escapeValue escapes a string literal for the query language. Intuit's
// grammar uses backslash escapes inside single-quoted literals.
func escapeValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return v
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package logic

import (
	"strconv"
	"strings"

	"github.com/kohaut/promis/internal/spatial"
)

// EmitQuery formats the query clause for target point i.
func EmitQuery(i int) string {
	return "query(landscape(x_" + strconv.Itoa(i) + ")).\n"
}

// EmitClause formats relation's distributional clause at point index i,
// per §4.6. ScalarRelation emits a hybrid normal fact; KindBernoulli emits
// a discrete-probability fact. When the relation has no location type
// (depth), the second argument and its comma are omitted.
func EmitClause(r *spatial.Relation, i int) string {
	var b strings.Builder
	atom := r.Name + "(x_" + strconv.Itoa(i)
	if r.HasLocationType {
		atom += ", " + r.LocationType
	}
	atom += ")"

	switch r.Kind {
	case spatial.KindScalar:
		b.WriteString(atom)
		b.WriteString(" ~ normal(")
		b.WriteString(formatFloat(r.Mean(i)))
		b.WriteString(", ")
		b.WriteString(formatFloat(r.Variance(i)))
		b.WriteString(").\n")
	case spatial.KindBernoulli:
		b.WriteString(formatFloat(r.Mean(i)))
		b.WriteString("::")
		b.WriteString(atom)
		b.WriteString(".\n")
	}
	return b.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

package samsungdocs

import (
	"strconv"
	"strings"
)

// versionOps are the recognized comparator operators, longest first so that
// ">=" is not misread as ">" followed by "=...".
var versionOps = []string{">=", "<=", "!=", ">", "<", "="}

// MatchVersion evaluates a comparator expression against a dotted-numeric
// version string. The expression is a comma-separated conjunction of
// clauses "OP value" with OP one of >=, <=, !=, >, <, = — all clauses must
// hold. Comparison is component-wise numeric with missing trailing
// components treated as 0, so "4" < "4.1" and "4.0" equals "4".
//
// A malformed clause (no recognized operator) makes the whole expression
// evaluate false; it never raises.
func MatchVersion(version, expression string) bool {
	for _, clause := range strings.Split(expression, ",") {
		clause = strings.TrimSpace(clause)

		var op, operand string
		for _, candidate := range versionOps {
			if strings.HasPrefix(clause, candidate) {
				op = candidate
				operand = strings.TrimSpace(clause[len(candidate):])
				break
			}
		}
		if op == "" || operand == "" {
			return false
		}

		cmp := CompareVersions(version, operand)
		var ok bool
		switch op {
		case ">=":
			ok = cmp >= 0
		case "<=":
			ok = cmp <= 0
		case "!=":
			ok = cmp != 0
		case ">":
			ok = cmp > 0
		case "<":
			ok = cmp < 0
		case "=":
			ok = cmp == 0
		}
		if !ok {
			return false
		}
	}
	return true
}

// CompareVersions compares two dotted-numeric versions component-wise,
// returning -1, 0, or 1. Non-numeric components count as 0.
func CompareVersions(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		av := versionComponent(as, i)
		bv := versionComponent(bs, i)
		if av < bv {
			return -1
		}
		if av > bv {
			return 1
		}
	}
	return 0
}

func versionComponent(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}
	v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
	if err != nil {
		return 0
	}
	return v
}

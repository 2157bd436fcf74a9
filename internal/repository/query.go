package repository

import (
	"strconv"
	"strings"
)

// dialect describes how a backend spells bind parameters.
type dialect struct {
	positional func(n int) string
	named      func(name string) string
}

var (
	postgresDialect = dialect{
		positional: func(n int) string { return "$" + strconv.Itoa(n) },
		named:      func(name string) string { return "@" + name },
	}
	sqliteDialect = dialect{
		positional: func(n int) string { return "?" + strconv.Itoa(n) },
		named:      func(name string) string { return ":" + name },
	}
)

type binding int

const (
	bindPositional binding = iota
	bindNamed
)

// column maps an entity field to its table column. Nullable text columns
// read back NULL as the empty string, so they are compared through COALESCE.
type column struct {
	field    string
	name     string
	nullable bool
}

// tableMapping is the entity-to-table description portable queries are rendered from.
// The first column is the identity.
type tableMapping struct {
	table   string
	columns []column
}

var employeeTable = tableMapping{
	table: "employees",
	columns: []column{
		{field: "id", name: "id"},
		{field: "firstName", name: "first_name", nullable: true},
		{field: "lastName", name: "last_name", nullable: true},
		{field: "email", name: "email", nullable: true},
	},
}

func (m tableMapping) columnFor(field string) column {
	for _, c := range m.columns {
		if c.field == field {
			return c
		}
	}

	panic("unmapped field " + field + " on table " + m.table)
}

func (m tableMapping) selectList() string {
	names := make([]string, 0, len(m.columns))
	for _, c := range m.columns {
		names = append(names, c.name)
	}

	return strings.Join(names, ", ")
}

// selectWhere renders "SELECT <columns> FROM <table> WHERE f1 = p1 AND f2 = p2 ..."
// for the given entity fields, using the dialect's parameter syntax. Named
// parameters take the field name. Nullable columns render as COALESCE(f, '') = p.
func (m tableMapping) selectWhere(d dialect, b binding, fields ...string) string {
	var sb strings.Builder

	sb.WriteString("SELECT ")
	sb.WriteString(m.selectList())
	sb.WriteString(" FROM ")
	sb.WriteString(m.table)

	for i, field := range fields {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}

		col := m.columnFor(field)
		if col.nullable {
			sb.WriteString("COALESCE(" + col.name + ", '')")
		} else {
			sb.WriteString(col.name)
		}
		sb.WriteString(" = ")

		if b == bindNamed {
			sb.WriteString(d.named(field))
		} else {
			sb.WriteString(d.positional(i + 1))
		}
	}

	return sb.String()
}

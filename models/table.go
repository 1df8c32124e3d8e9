package models

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ColumnType is the declared type of a table column.
type ColumnType int

const (
	TypeString ColumnType = iota
	TypeInt
	TypeFloat
)

func (t ColumnType) String() string {
	switch t {
	case TypeInt:
		return "integer"
	case TypeFloat:
		return "double"
	default:
		return "string"
	}
}

// Numeric reports whether cells of this type carry a float64 value.
func (t ColumnType) Numeric() bool {
	return t == TypeInt || t == TypeFloat
}

// Column is one named, typed column of a Schema.
type Column struct {
	Name string
	Type ColumnType
}

// Schema is the ordered set of columns of a Table.
type Schema struct {
	Columns []Column
	index   map[string]int
}

// NewSchema builds a Schema. Later duplicates of a name shadow nothing: lookups
// always resolve to the first column with that name.
func NewSchema(cols []Column) Schema {
	s := Schema{
		Columns: append([]Column(nil), cols...),
		index:   make(map[string]int, len(cols)),
	}
	for i, c := range s.Columns {
		if _, dup := s.index[c.Name]; !dup {
			s.index[c.Name] = i
		}
	}
	return s
}

// Index returns the position of the named column.
func (s Schema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Names returns the column names in order.
func (s Schema) Names() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// WithType returns a copy of s in which the named column has type t. Unknown
// names are ignored.
func (s Schema) WithType(name string, t ColumnType) Schema {
	cols := append([]Column(nil), s.Columns...)
	if i, ok := s.index[name]; ok {
		cols[i].Type = t
	}
	return NewSchema(cols)
}

// Value is a single cell. Text holds the source representation; Num holds the
// parsed value for numeric columns.
type Value struct {
	Text string
	Num  float64
	Null bool
}

// NullValue is the missing cell.
var NullValue = Value{Null: true}

// Missing reports whether the cell counts as absent: SQL-style null, or a
// numeric NaN.
func (v Value) Missing() bool {
	return v.Null || math.IsNaN(v.Num)
}

// TextValue returns a string cell.
func TextValue(s string) Value {
	return Value{Text: s}
}

// NumValue returns a numeric cell whose text is the shortest float rendering.
func NumValue(f float64) Value {
	return Value{Text: strconv.FormatFloat(f, 'f', -1, 64), Num: f}
}

// ParseNumber parses decimal float text. Hex literals are not numbers, and
// values beyond the float64 range parse as ±Inf.
func ParseNumber(text string) (float64, bool) {
	digits := strings.TrimLeft(text, "+-")
	if len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		return 0, false
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		var nerr *strconv.NumError
		if errors.As(err, &nerr) && nerr.Err == strconv.ErrRange {
			return f, true
		}
		return 0, false
	}
	return f, true
}

// Record is one row; cells are positional against the table schema.
type Record []Value

// Table is an ordered sequence of records sharing one schema.
type Table struct {
	Schema  Schema
	Records []Record
}

// NewTable returns an empty table with the given schema.
func NewTable(schema Schema) *Table {
	return &Table{Schema: schema}
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// Append adds a record, padding or truncating it to the schema width.
func (t *Table) Append(r Record) {
	width := len(t.Schema.Columns)
	switch {
	case len(r) < width:
		padded := make(Record, width)
		copy(padded, r)
		for i := len(r); i < width; i++ {
			padded[i] = NullValue
		}
		r = padded
	case len(r) > width:
		r = r[:width]
	}
	t.Records = append(t.Records, r)
}

// Head returns at most n leading records.
func (t *Table) Head(n int) []Record {
	if n < 0 {
		n = 0
	}
	if n > len(t.Records) {
		n = len(t.Records)
	}
	return t.Records[:n]
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{
		Schema:  NewSchema(t.Schema.Columns),
		Records: make([]Record, len(t.Records)),
	}
	for i, r := range t.Records {
		out.Records[i] = append(Record(nil), r...)
	}
	return out
}

// Lookup resolves column names to indexes, failing on the first one that is
// absent from the schema.
func (t *Table) Lookup(names ...string) ([]int, error) {
	idx := make([]int, len(names))
	for i, n := range names {
		j, ok := t.Schema.Index(n)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, n)
		}
		idx[i] = j
	}
	return idx, nil
}

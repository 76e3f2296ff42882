// Package beadwork turns an accepted task into its two artifacts: the
// expanded work-item body and the acceptance schema the external validator
// later checks an implementation against.
//
// Bodies are built as an in-memory tree of sections and serialized once
// through a single encoder, so escaping untrusted free text happens at
// exactly one point instead of at each interpolation site.
package beadwork

import (
	"strconv"
	"strings"
)

// Escape transforms free text for safe embedding in a JSON string literal.
// Backslashes are escaped first; doing quotes or newlines first would turn
// the backslashes introduced by those steps into double-escaped garbage.
func Escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	return s
}

// Unescape reverses Escape. Unknown escape sequences are preserved
// literally rather than dropped.
func Unescape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// field is one key/value pair inside a section. Exactly one of the value
// slots is used.
type field struct {
	key   string
	str   string
	num   int
	flag  bool
	list  []string
	table []map[string]string
	kind  fieldKind
}

type fieldKind int

const (
	kindString fieldKind = iota
	kindNumber
	kindBool
	kindList
	kindTable
)

// section is a named group of fields in document order.
type section struct {
	name   string
	fields []field
}

// Builder accumulates sections and serializes them once via Encode.
type Builder struct {
	sections []*section
}

// NewBuilder returns an empty document builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Section starts (or continues) a named section. Section names are fixed
// template identifiers, never untrusted text.
func (b *Builder) Section(name string) *Section {
	s := &section{name: name}
	b.sections = append(b.sections, s)
	return &Section{s: s}
}

// Section exposes field appenders for one section.
type Section struct {
	s *section
}

// Field appends a string field.
func (s *Section) Field(key, value string) *Section {
	s.s.fields = append(s.s.fields, field{key: key, str: value, kind: kindString})
	return s
}

// Number appends an integer field.
func (s *Section) Number(key string, value int) *Section {
	s.s.fields = append(s.s.fields, field{key: key, num: value, kind: kindNumber})
	return s
}

// Flag appends a boolean field.
func (s *Section) Flag(key string, value bool) *Section {
	s.s.fields = append(s.s.fields, field{key: key, flag: value, kind: kindBool})
	return s
}

// List appends a string-array field.
func (s *Section) List(key string, items []string) *Section {
	s.s.fields = append(s.s.fields, field{key: key, list: items, kind: kindList})
	return s
}

// Table appends an array-of-objects field. Row keys are template
// identifiers; row values are untrusted text.
func (s *Section) Table(key string, keys []string, rows []map[string]string) *Section {
	ordered := make([]map[string]string, len(rows))
	copy(ordered, rows)
	s.s.fields = append(s.s.fields, field{key: key, list: keys, table: ordered, kind: kindTable})
	return s
}

// Encode serializes the document to JSON. All free text passes through
// Escape here and nowhere else.
func (b *Builder) Encode() string {
	var out strings.Builder
	out.WriteString("{\n")
	for i, sec := range b.sections {
		out.WriteString("  \"")
		out.WriteString(sec.name)
		out.WriteString("\": {\n")
		for j, f := range sec.fields {
			out.WriteString("    \"")
			out.WriteString(f.key)
			out.WriteString("\": ")
			encodeValue(&out, f)
			if j < len(sec.fields)-1 {
				out.WriteString(",")
			}
			out.WriteString("\n")
		}
		out.WriteString("  }")
		if i < len(b.sections)-1 {
			out.WriteString(",")
		}
		out.WriteString("\n")
	}
	out.WriteString("}\n")
	return out.String()
}

func encodeValue(out *strings.Builder, f field) {
	switch f.kind {
	case kindString:
		out.WriteString(`"`)
		out.WriteString(Escape(f.str))
		out.WriteString(`"`)
	case kindNumber:
		out.WriteString(strconv.Itoa(f.num))
	case kindBool:
		if f.flag {
			out.WriteString("true")
		} else {
			out.WriteString("false")
		}
	case kindList:
		out.WriteString("[")
		for i, item := range f.list {
			if i > 0 {
				out.WriteString(", ")
			}
			out.WriteString(`"`)
			out.WriteString(Escape(item))
			out.WriteString(`"`)
		}
		out.WriteString("]")
	case kindTable:
		out.WriteString("[")
		for i, row := range f.table {
			if i > 0 {
				out.WriteString(", ")
			}
			out.WriteString("{")
			for k, key := range f.list {
				if k > 0 {
					out.WriteString(", ")
				}
				out.WriteString(`"`)
				out.WriteString(key)
				out.WriteString(`": "`)
				out.WriteString(Escape(row[key]))
				out.WriteString(`"`)
			}
			out.WriteString("}")
		}
		out.WriteString("]")
	}
}

// Package libconfig renders Go values in the libconfig text format read by
// constatus.
//
// Structs become groups, slices and arrays become lists and the remaining
// supported kinds become scalars. Struct fields are written in declaration
// order and named by their `libconfig` tag:
//
//	Port int    `libconfig:"listen-port"`
//	Cmd  string `libconfig:"cmd,omitempty"`
//	Out  Output `libconfig:",inline"`
//
// omitempty skips nil pointers, nil interfaces, nil slices and empty strings.
// inline merges the fields of a struct (or the struct held by an interface)
// into the enclosing group.
package libconfig

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const indentWidth = 4

// Marshal returns the libconfig encoding of v, which must be a struct or a
// pointer to one.
func Marshal(v interface{}) ([]byte, error) {
	var b bytes.Buffer
	if err := NewEncoder(&b).Encode(v); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

type Encoder struct {
	w io.Writer
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes the libconfig encoding of v to the underlying writer.
func (e *Encoder) Encode(v interface{}) error {
	rv := indirect(reflect.ValueOf(v))
	if !rv.IsValid() || rv.Kind() != reflect.Struct {
		return errors.Errorf("libconfig: top level value must be a struct, got %T", v)
	}
	s := &state{}
	if err := s.settings(rv, 0); err != nil {
		return err
	}
	_, err := e.w.Write(s.Bytes())
	return err
}

type state struct {
	bytes.Buffer
}

type field struct {
	name  string
	value reflect.Value
}

// fields flattens the settings of a struct value, resolving inline fields.
func fields(v reflect.Value) ([]field, error) {
	var out []field
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" {
			continue
		}
		tag, ok := sf.Tag.Lookup("libconfig")
		if tag == "-" {
			continue
		}
		name, opts := parseTag(tag)
		if !ok || (name == "" && !opts.inline) {
			name = sf.Name
		}
		fv := v.Field(i)
		if opts.omitempty && isEmpty(fv) {
			continue
		}
		if opts.inline {
			iv := indirect(fv)
			if !iv.IsValid() {
				continue
			}
			if iv.Kind() != reflect.Struct {
				return nil, errors.Errorf("libconfig: inline field %s is %s, not a struct", sf.Name, iv.Kind())
			}
			sub, err := fields(iv)
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
			continue
		}
		if !ValidName(name) {
			return nil, errors.Errorf("libconfig: invalid setting name %q", name)
		}
		out = append(out, field{name: name, value: fv})
	}
	return out, nil
}

func (s *state) settings(v reflect.Value, depth int) error {
	fs, err := fields(v)
	if err != nil {
		return err
	}
	for _, f := range fs {
		if err := s.setting(f.name, f.value, depth); err != nil {
			return err
		}
		s.WriteString(";\n")
	}
	return nil
}

func (s *state) setting(name string, v reflect.Value, depth int) error {
	v = indirect(v)
	if !v.IsValid() {
		return errors.Errorf("libconfig: setting %q is nil", name)
	}
	pad := strings.Repeat(" ", depth*indentWidth)
	switch v.Kind() {
	case reflect.Struct, reflect.Slice, reflect.Array:
		fmt.Fprintf(s, "%s%s =\n", pad, name)
		return s.value(v, depth)
	}
	fmt.Fprintf(s, "%s%s = ", pad, name)
	if err := s.scalar(v); err != nil {
		return errors.Wrapf(err, "setting %q", name)
	}
	return nil
}

// value writes an unnamed value starting at the given indentation.
func (s *state) value(v reflect.Value, depth int) error {
	v = indirect(v)
	if !v.IsValid() {
		return errors.New("libconfig: nil list element")
	}
	pad := strings.Repeat(" ", depth*indentWidth)
	switch v.Kind() {
	case reflect.Struct:
		s.WriteString(pad + "{\n")
		if err := s.settings(v, depth+1); err != nil {
			return err
		}
		s.WriteString(pad + "}")
		return nil
	case reflect.Slice, reflect.Array:
		if v.Len() == 0 {
			s.WriteString(pad + "( )")
			return nil
		}
		s.WriteString(pad + "(\n")
		for i := 0; i < v.Len(); i++ {
			if i > 0 {
				s.WriteString(",\n")
			}
			if err := s.value(v.Index(i), depth+1); err != nil {
				return err
			}
		}
		s.WriteString("\n" + pad + ")")
		return nil
	}
	s.WriteString(pad)
	return s.scalar(v)
}

func (s *state) scalar(v reflect.Value) error {
	switch v.Kind() {
	case reflect.String:
		s.WriteString(Quote(v.String()))
	case reflect.Bool:
		s.WriteString(strconv.FormatBool(v.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		s.WriteString(formatInt(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := v.Uint()
		if u > math.MaxInt64 {
			return errors.Errorf("libconfig: %d overflows a 64 bit integer", u)
		}
		s.WriteString(formatInt(int64(u)))
	case reflect.Float32, reflect.Float64:
		f, err := formatFloat(v.Float(), v.Type().Bits())
		if err != nil {
			return err
		}
		s.WriteString(f)
	default:
		return errors.Errorf("libconfig: unsupported kind %s", v.Kind())
	}
	return nil
}

func formatInt(i int64) string {
	s := strconv.FormatInt(i, 10)
	if i > math.MaxInt32 || i < math.MinInt32 {
		s += "L"
	}
	return s
}

// formatFloat always produces a literal libconfig parses as a float.
func formatFloat(f float64, bits int) (string, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "", errors.Errorf("libconfig: %v cannot be represented", f)
	}
	format := byte('f')
	if a := math.Abs(f); a != 0 && (a < 1e-4 || a >= 1e16) {
		format = 'g'
	}
	s := strconv.FormatFloat(f, format, -1, bits)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s, nil
}

// Quote returns s as a libconfig string literal.
func Quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if c < 0x20 || c == 0x7f {
				fmt.Fprintf(&b, `\x%02x`, c)
			} else {
				b.WriteByte(c)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

// ValidName reports whether name is a legal libconfig setting name.
func ValidName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '*':
		case i > 0 && (r >= '0' && r <= '9' || r == '-' || r == '_'):
		default:
			return false
		}
	}
	return true
}

type tagOptions struct {
	omitempty bool
	inline    bool
}

func parseTag(tag string) (string, tagOptions) {
	parts := strings.Split(tag, ",")
	var opts tagOptions
	for _, o := range parts[1:] {
		switch o {
		case "omitempty":
			opts.omitempty = true
		case "inline":
			opts.inline = true
		}
	}
	return parts[0], opts
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map:
		return v.IsNil()
	case reflect.String:
		return v.Len() == 0
	}
	return false
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is one step of a Path, either a field of a record or map, or an
// index into a sequence.
type Segment struct {
	Field *string
	Index *int
}

func FieldSegment(f string) Segment {
	return Segment{Field: &f}
}

func IndexSegment(i int) Segment {
	return Segment{Index: &i}
}

// Key returns the segment in patch wire form.
func (s Segment) Key() string {
	if s.Index != nil {
		return strconv.Itoa(*s.Index)
	}
	if s.Field != nil {
		return *s.Field
	}
	return ""
}

func (s Segment) String() string {
	if s.Index != nil {
		return "[" + strconv.Itoa(*s.Index) + "]"
	}
	if s.Field != nil {
		return "." + pathString(*s.Field)
	}
	return ""
}

type Path []Segment

func (p Path) String() string {
	buf := &strings.Builder{}
	buf.WriteByte('$')
	for _, s := range p {
		buf.WriteString(s.String())
	}
	return buf.String()
}

// Keys returns the wire form of each segment.
func (p Path) Keys() []string {
	res := make([]string, len(p))
	for i, s := range p {
		res[i] = s.Key()
	}
	return res
}

// Append returns a new path with s added, leaving p untouched.
func (p Path) Append(s Segment) Path {
	res := make(Path, len(p), len(p)+1)
	copy(res, p)
	return append(res, s)
}

func ParsePath(p string) (Path, error) {
	if len(p) == 0 || p[0] != '$' {
		return nil, fmt.Errorf("%w: path %q should start with '$'", ErrBadPath, p)
	}
	res := Path{}
	frag := p[1:]
	for len(frag) != 0 {
		switch frag[0] {
		case '.':
			field, rest, err := parseField(frag[1:])
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %w", ErrBadPath, p, err)
			}
			res = append(res, FieldSegment(field))
			frag = rest
		case '[':
			i := strings.IndexByte(frag, ']')
			if i == -1 {
				return nil, fmt.Errorf("%w: %q: expected '[' <index> ']'", ErrBadPath, p)
			}
			index, ok := ParseIndex(frag[1:i])
			if !ok {
				return nil, fmt.Errorf("%w: %q: bad index %q", ErrBadPath, p, frag[1:i])
			}
			res = append(res, IndexSegment(index))
			frag = frag[i+1:]
		default:
			return nil, fmt.Errorf("%w: %q: expected '.' or '['", ErrBadPath, p)
		}
	}
	return res, nil
}

func parseField(frag string) (field, rest string, err error) {
	if len(frag) == 0 {
		return "", "", fmt.Errorf("expected field at end of string")
	}
	if frag[0] != '\'' {
		i := strings.IndexAny(frag, ".[")
		if i == -1 {
			return frag, "", nil
		}
		return frag[:i], frag[i:], nil
	}
	escaped := false
	res := make([]byte, 0, len(frag))
	for i := 1; i < len(frag); i++ {
		c := frag[i]
		switch {
		case c == '\\' && !escaped:
			escaped = true
		case c == '\'' && !escaped:
			return string(res), frag[i+1:], nil
		default:
			escaped = false
			res = append(res, c)
		}
	}
	return "", "", fmt.Errorf("end of string scanning for \"'\"")
}

func pathString(f string) string {
	if f != "" && strings.IndexAny(f, "'.*$[]\\ \t") == -1 {
		return f
	}
	f = strings.ReplaceAll(f, "\\", "\\\\")
	return "'" + strings.ReplaceAll(f, "'", "\\'") + "'"
}

// GetPath returns the node at p, or nil if some segment is missing.
func (y *Node) GetPath(p Path) (*Node, error) {
	res := y
	for i, s := range p {
		switch {
		case s.Index != nil:
			if res.Type != SequenceType {
				return nil, fmt.Errorf("%w: expected sequence at %s, got %s", ErrBadPath, p[:i], res.Type)
			}
		case s.Field != nil:
			if !res.Type.IsKeyed() {
				return nil, fmt.Errorf("%w: expected record or map at %s, got %s", ErrBadPath, p[:i], res.Type)
			}
		}
		next, ok := res.Child(s.Key())
		if !ok {
			return nil, nil
		}
		res = next
	}
	return res, nil
}

package markup

import (
	"strconv"
	"strings"
)

// attrFloats reads up to n whitespace-separated numbers from an
// attribute into dst. Missing attributes are an error only when
// required; short vectors are an error only when exact. Returns how many
// numbers were read.
func attrFloats(n *Node, name string, dst []float64, required, exact bool) (int, error) {
	text, ok := n.Attr(name)
	if !ok {
		if required {
			return 0, errAt(n, "missing attribute %q", name)
		}
		return 0, nil
	}
	fields := strings.Fields(text)
	if len(fields) > len(dst) {
		return 0, errAt(n, "attribute %q has %d values, at most %d expected",
			name, len(fields), len(dst))
	}
	if exact && len(fields) != len(dst) {
		return 0, errAt(n, "attribute %q has %d values, %d expected",
			name, len(fields), len(dst))
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return 0, errAt(n, "attribute %q: bad number %q", name, f)
		}
		dst[i] = v
	}
	return len(fields), nil
}

// attrFloat reads a single-number attribute.
func attrFloat(n *Node, name string, dst *float64, required bool) error {
	buf := [1]float64{*dst}
	cnt, err := attrFloats(n, name, buf[:], required, false)
	if err != nil {
		return err
	}
	if cnt > 0 {
		*dst = buf[0]
	}
	return nil
}

// attrInts reads up to n whitespace-separated integers.
func attrInts(n *Node, name string, dst []int, required, exact bool) (int, error) {
	text, ok := n.Attr(name)
	if !ok {
		if required {
			return 0, errAt(n, "missing attribute %q", name)
		}
		return 0, nil
	}
	fields := strings.Fields(text)
	if len(fields) > len(dst) {
		return 0, errAt(n, "attribute %q has %d values, at most %d expected",
			name, len(fields), len(dst))
	}
	if exact && len(fields) != len(dst) {
		return 0, errAt(n, "attribute %q has %d values, %d expected",
			name, len(fields), len(dst))
	}
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return 0, errAt(n, "attribute %q: bad integer %q", name, f)
		}
		dst[i] = v
	}
	return len(fields), nil
}

// attrInt reads a single-integer attribute.
func attrInt(n *Node, name string, dst *int, required bool) error {
	buf := [1]int{*dst}
	cnt, err := attrInts(n, name, buf[:], required, false)
	if err != nil {
		return err
	}
	if cnt > 0 {
		*dst = buf[0]
	}
	return nil
}

// attrText reads a string attribute into dst, reporting presence.
func attrText(n *Node, name string, dst *string) bool {
	v, ok := n.Attr(name)
	if ok {
		*dst = v
	}
	return ok
}

// attrKeyword maps an attribute through a keyword table. Unknown values
// are an error; absent attributes leave dst untouched unless required.
func attrKeyword(n *Node, name string, table map[string]int, dst *int, required bool) (bool, error) {
	text, ok := n.Attr(name)
	if !ok {
		if required {
			return false, errAt(n, "missing attribute %q", name)
		}
		return false, nil
	}
	v, ok := table[text]
	if !ok {
		return false, errAt(n, "invalid keyword %q for attribute %q", text, name)
	}
	*dst = v
	return true, nil
}

// attrBool reads a "true"/"false" attribute.
func attrBool(n *Node, name string, dst *bool) (bool, error) {
	var v int
	ok, err := attrKeyword(n, name, boolTable, &v, false)
	if err != nil || !ok {
		return ok, err
	}
	*dst = v == 1
	return true, nil
}

// attrFloatList reads an unbounded whitespace-separated number list.
func attrFloatList(n *Node, name string) ([]float64, error) {
	text, ok := n.Attr(name)
	if !ok {
		return nil, nil
	}
	fields := strings.Fields(text)
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, errAt(n, "attribute %q: bad number %q", name, f)
		}
		out[i] = v
	}
	return out, nil
}

// attrIntList reads an unbounded whitespace-separated integer list.
func attrIntList(n *Node, name string) ([]int, error) {
	text, ok := n.Attr(name)
	if !ok {
		return nil, nil
	}
	fields := strings.Fields(text)
	out := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, errAt(n, "attribute %q: bad integer %q", name, f)
		}
		out[i] = v
	}
	return out, nil
}

// attrRGBA reads a 4-component float32 color.
func attrRGBA(n *Node, name string, dst *[4]float32) error {
	var buf [4]float64
	cnt, err := attrFloats(n, name, buf[:], false, true)
	if err != nil {
		return err
	}
	if cnt > 0 {
		for i, v := range buf {
			dst[i] = float32(v)
		}
	}
	return nil
}

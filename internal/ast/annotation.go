package ast

import "strconv"

// Annotation carries the doc-comment metadata attached to a declaration or
// an interior term (spec.md §4.J): "the only channel for human-readable
// metadata". Values are stored as their literal source text; typed getters
// parse on demand, mirroring the original compiler's Annotated trait
// (get_string/get_bool/get_num/get_int/get_enum).
type Annotation map[string]string

// wellKnownAnnotationKeys is the fixed set of recognised annotation keys;
// anything else is ignored. The exporter reads description, title,
// required, example, minimum, maximum, multipleOf, pattern and enum;
// summary, operationId and tags are recognised but not read by any stage.
var wellKnownAnnotationKeys = map[string]bool{
	"description": true, "title": true, "required": true, "example": true,
	"minimum": true, "maximum": true, "multipleOf": true, "pattern": true,
	"enum": true, "summary": true, "operationId": true, "tags": true,
}

// IsWellKnownAnnotationKey reports whether key is in the recognised set.
func IsWellKnownAnnotationKey(key string) bool {
	return wellKnownAnnotationKeys[key]
}

func (a Annotation) GetString(key string) (string, bool) {
	v, ok := a[key]
	return v, ok
}

func (a Annotation) GetBool(key string) (bool, bool) {
	v, ok := a[key]
	if !ok {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}

func (a Annotation) GetNum(key string) (float64, bool) {
	v, ok := a[key]
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func (a Annotation) GetInt(key string) (int64, bool) {
	v, ok := a[key]
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// GetEnum parses a comma-separated list, e.g. `# enum: "a,b,c"`.
func (a Annotation) GetEnum(key string) ([]string, bool) {
	v, ok := a[key]
	if !ok || v == "" {
		return nil, false
	}
	var out []string
	start := 0
	for i := 0; i <= len(v); i++ {
		if i == len(v) || v[i] == ',' {
			out = append(out, v[start:i])
			start = i + 1
		}
	}
	return out, true
}

// Merge returns a new Annotation with other's keys overriding a's.
func (a Annotation) Merge(other Annotation) Annotation {
	out := make(Annotation, len(a)+len(other))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

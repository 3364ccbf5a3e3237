package main

import (
	"gopkg.in/yaml.v3"

	"github.com/oal-lang/oal/internal/spec"
)

// The yaml.v3 shapes below are a plain-data mirror of internal/spec's
// exported types, built here rather than inside internal/spec so the
// compiler core carries no serialization dependency (DESIGN.md). This is
// the "-dump=yaml" debug view SPEC_FULL.md describes, standing in ahead of
// a real OpenAPI emitter (kept external per Non-goals).

type yamlSpec struct {
	Relations  []yamlRelation  `yaml:"relations"`
	References []yamlReference `yaml:"references"`
}

type yamlRelation struct {
	Pattern   string                   `yaml:"pattern"`
	Methods   map[string]yamlTransfer `yaml:"methods"`
}

type yamlReference struct {
	Name   string      `yaml:"name"`
	Schema yamlSchema  `yaml:"schema"`
}

type yamlTransfer struct {
	Domain  *yamlSchema   `yaml:"domain,omitempty"`
	Ranges  []yamlContent `yaml:"ranges"`
	Params  *yamlSchema   `yaml:"params,omitempty"`
}

type yamlContent struct {
	Status *int        `yaml:"status,omitempty"`
	Media  *string     `yaml:"media,omitempty"`
	Schema *yamlSchema `yaml:"schema,omitempty"`
	Desc   string      `yaml:"desc,omitempty"`
}

type yamlSchema struct {
	Kind     string       `yaml:"kind"`
	Desc     string       `yaml:"desc,omitempty"`
	Required bool         `yaml:"required,omitempty"`
	Ref      string       `yaml:"ref,omitempty"`
	Item     *yamlSchema  `yaml:"item,omitempty"`
	Props    []yamlProp   `yaml:"props,omitempty"`
}

type yamlProp struct {
	Name     string     `yaml:"name"`
	Schema   yamlSchema `yaml:"schema"`
	Required bool       `yaml:"required,omitempty"`
}

func toYAMLSpec(s *spec.Spec) yamlSpec {
	out := yamlSpec{}
	for _, rel := range s.Rels {
		yr := yamlRelation{Pattern: rel.Pattern, Methods: map[string]yamlTransfer{}}
		for method, t := range rel.Transfers {
			yr.Methods[method] = toYAMLTransfer(t)
		}
		out.Relations = append(out.Relations, yr)
	}
	for _, ref := range s.Refs {
		out.References = append(out.References, yamlReference{
			Name:   ref.Name.Bare(),
			Schema: toYAMLSchema(ref.Schema),
		})
	}
	return out
}

func toYAMLTransfer(t spec.Transfer) yamlTransfer {
	yt := yamlTransfer{}
	if t.Domain != nil {
		s := toYAMLSchema(*t.Domain)
		yt.Domain = &s
	}
	if t.Params != nil {
		s := toYAMLSchema(*t.Params)
		yt.Params = &s
	}
	for _, entry := range t.Ranges.Entries() {
		yt.Ranges = append(yt.Ranges, toYAMLContent(entry.Content))
	}
	return yt
}

func toYAMLContent(c spec.Content) yamlContent {
	yc := yamlContent{Status: c.Status, Media: c.Media, Desc: c.Desc}
	if c.Schema != nil {
		s := toYAMLSchema(*c.Schema)
		yc.Schema = &s
	}
	return yc
}

func toYAMLSchema(s spec.Schema) yamlSchema {
	ys := yamlSchema{Desc: s.Desc, Required: s.Required}
	switch e := s.Expr.(type) {
	case spec.Num:
		ys.Kind = "num"
	case spec.Int:
		ys.Kind = "int"
	case spec.Str:
		ys.Kind = "str"
	case spec.Bool:
		ys.Kind = "bool"
	case spec.Rel:
		ys.Kind = "rel"
		ys.Ref = e.Pattern
	case spec.UriSchema:
		ys.Kind = "uri"
	case spec.Arr:
		ys.Kind = "array"
		if e.Item != nil {
			item := toYAMLSchema(*e.Item)
			ys.Item = &item
		}
	case spec.Obj:
		ys.Kind = "object"
		for _, p := range e.Props {
			ys.Props = append(ys.Props, yamlProp{
				Name:     p.Name.Bare(),
				Schema:   toYAMLSchema(p.Schema),
				Required: p.Required,
			})
		}
	case spec.Op:
		ys.Kind = e.Op.String()
		for _, operand := range e.Operands {
			ys.Props = append(ys.Props, yamlProp{Schema: toYAMLSchema(operand)})
		}
	case spec.Ref:
		ys.Kind = "ref"
		ys.Ref = e.Name.Bare()
	}
	return ys
}

func dumpYAML(s *spec.Spec) ([]byte, error) {
	return yaml.Marshal(toYAMLSpec(s))
}

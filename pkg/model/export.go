package model

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

type entry struct {
	key   string
	value any
}

// orderedMap serialises as a JSON object / YAML mapping keeping insertion
// order; the host renders panel items in key order.
type orderedMap []entry

func (m orderedMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(e.value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m orderedMap) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range m {
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(e.value); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.key},
			valueNode,
		)
	}
	return node, nil
}

// document converts the field into the host-facing property definition.
// Option sources are not serialisable; resolve the tree first to inline them.
func (f Field) document() orderedMap {
	var doc orderedMap
	add := func(key string, value any) {
		doc = append(doc, entry{key: key, value: value})
	}
	if f.Type != "" {
		add("type", string(f.Type))
	}
	if f.Component != "" {
		add("component", string(f.Component))
	}
	if f.Uses != "" {
		add("uses", f.Uses)
	}
	if f.Ref != "" {
		add("ref", f.Ref)
	}
	if f.Label != "" {
		add("label", f.Label)
	}
	if f.Expression != "" {
		add("expression", f.Expression)
	}
	if f.DefaultValue != nil {
		add("defaultValue", f.DefaultValue)
	}
	if f.Options != nil {
		add("options", f.Options)
	}
	if f.Show != "" {
		add("show", f.Show)
	}
	if f.IsArray() {
		add("allowAdd", f.AllowAdd)
		add("allowRemove", f.AllowRemove)
		if f.AddTranslation != "" {
			add("addTranslation", f.AddTranslation)
		}
		add("grouped", f.Grouped)
		if f.ItemTitleRef != "" {
			add("itemTitleRef", f.ItemTitleRef)
		}
	}
	if len(f.Items) > 0 {
		items := make(orderedMap, 0, len(f.Items))
		for _, child := range f.Items {
			if child == nil {
				continue
			}
			items = append(items, entry{key: child.Key, value: child.document()})
		}
		add("items", items)
	}
	if doc == nil {
		doc = orderedMap{}
	}
	return doc
}

// MarshalJSON emits the property definition with items in declaration order.
func (f Field) MarshalJSON() ([]byte, error) {
	return f.document().MarshalJSON()
}

// MarshalYAML emits the property definition as an ordered YAML mapping.
func (f Field) MarshalYAML() (any, error) {
	return f.document().MarshalYAML()
}

/*
Copyright 2026 Clinsift Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package prompt builds model prompts from templates with {{name}}
// placeholders. Binding is immutable: each Bind call returns a new Prompt,
// and Build fails if any placeholder is still unbound, so a prompt with a
// missing note or schema never reaches the model.
package prompt

import (
	"encoding/json"
	"fmt"
	"maps"
)

// templateLiteral only accepts literal strings, keeping runtime data out of
// template structure. Runtime values enter through bindings instead.
type templateLiteral string

// binding is a value substituted for one placeholder.
type binding interface {
	value() (string, error)
}

type unbound struct{ name string }

func (u unbound) value() (string, error) {
	return "", fmt.Errorf("unbound placeholder: %s", u.name)
}

type textBinding struct{ val string }

func (t textBinding) value() (string, error) {
	return t.val, nil
}

type jsonBinding struct{ data any }

func (j jsonBinding) value() (string, error) {
	b, err := json.MarshalIndent(j.data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON binding: %w", err)
	}
	return string(b), nil
}

// Template is a prompt template with zero or more placeholders.
type Template struct {
	text     string
	bindings map[string]binding
}

// New parses a template literal and records its placeholders.
func New(template templateLiteral) (*Template, error) {
	bindings := make(map[string]binding)
	// Walk once to validate placeholder syntax and collect names; the
	// substitution returns the placeholder unchanged during parsing.
	if _, err := walk(string(template), func(name string) (string, error) {
		if _, ok := bindings[name]; !ok {
			bindings[name] = unbound{name: name}
		}
		return fmt.Sprintf("{{%s}}", name), nil
	}); err != nil {
		return nil, err
	}
	return &Template{text: string(template), bindings: bindings}, nil
}

// Must panics when template construction fails. For package-level templates
// whose validity is a compile-time property.
func Must(t *Template, err error) *Template {
	if err != nil {
		panic(err)
	}
	return t
}

// MustNew is sugar for Must(New(...)).
func MustNew(template templateLiteral) *Template {
	return Must(New(template))
}

// bind installs a binding, rejecting unknown and already-bound placeholders.
func (t *Template) bind(name string, b binding) (*Template, error) {
	existing, ok := t.bindings[name]
	if !ok {
		return nil, fmt.Errorf("placeholder %q not found in template", name)
	}
	if _, isUnbound := existing.(unbound); !isUnbound {
		return nil, fmt.Errorf("placeholder %q already bound", name)
	}
	nt := &Template{text: t.text, bindings: maps.Clone(t.bindings)}
	nt.bindings[name] = b
	return nt, nil
}

// BindText binds a runtime string, e.g. the discharge note under extraction.
func (t *Template) BindText(name, val string) (*Template, error) {
	return t.bind(name, textBinding{val: val})
}

// BindJSON binds structured data rendered as indented JSON.
func (t *Template) BindJSON(name string, data any) (*Template, error) {
	return t.bind(name, jsonBinding{data: data})
}

// MustBindText is sugar for Must(t.BindText(...)).
func (t *Template) MustBindText(name, val string) *Template {
	return Must(t.BindText(name, val))
}

// MustBindJSON is sugar for Must(t.BindJSON(...)).
func (t *Template) MustBindJSON(name string, data any) *Template {
	return Must(t.BindJSON(name, data))
}

// Placeholders returns the set of placeholder names in the template.
func (t *Template) Placeholders() map[string]struct{} {
	names := make(map[string]struct{}, len(t.bindings))
	for name := range t.bindings {
		names[name] = struct{}{}
	}
	return names
}

// Build renders the final prompt, failing on any unbound placeholder.
func (t *Template) Build() (string, error) {
	values := make(map[string]string, len(t.bindings))
	for name, b := range t.bindings {
		val, err := b.value()
		if err != nil {
			return "", err
		}
		values[name] = val
	}
	return walk(t.text, func(name string) (string, error) {
		return values[name], nil
	})
}

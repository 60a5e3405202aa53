// Package ensemble handles the member keys of model ensembles, e.g.
// "MPI-ESM.historical.r1i1p1", by naming each dot-separated element with a
// key template such as "model.experiment.realization".
package ensemble

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

const separator = "."

var (
	// ErrTemplateUnset is returned when the key template has not been set.
	ErrTemplateUnset = errors.New("ensemble: key template not set, set it via SetKeyTemplate(\"your.template\")")

	// ErrTemplateFormat is returned for templates without a dot separator.
	ErrTemplateFormat = errors.New("ensemble: elements must be divided by a dot (.)")

	// ErrTemplateMember is returned for templates with a "member" element.
	ErrTemplateMember = errors.New("ensemble: key template must not contain 'member', choose a different identifier")

	// ErrKeyFormat is returned for member keys that do not match the template.
	ErrKeyFormat = errors.New("ensemble: key does not match the key template")
)

// Accessor interprets member keys of one ensemble.
type Accessor struct {
	template string
	fields   []string
}

// NewAccessor returns an accessor with the given template.
func NewAccessor(template string) (*Accessor, error) {
	a := &Accessor{}
	if err := a.SetKeyTemplate(template); err != nil {
		return nil, err
	}
	return a, nil
}

// SetKeyTemplate validates and stores the template.
func (a *Accessor) SetKeyTemplate(template string) error {
	if !strings.Contains(template, separator) {
		return fmt.Errorf("%w: %q", ErrTemplateFormat, template)
	}
	fields := strings.Split(template, separator)
	if slices.Contains(fields, "member") {
		return ErrTemplateMember
	}
	a.template, a.fields = template, fields
	return nil
}

// KeyTemplate returns the template.
func (a *Accessor) KeyTemplate() (string, error) {
	if a.template == "" {
		return "", ErrTemplateUnset
	}
	return a.template, nil
}

// Fields returns the element names of the template.
func (a *Accessor) Fields() ([]string, error) {
	if a.template == "" {
		return nil, ErrTemplateUnset
	}
	return slices.Clone(a.fields), nil
}

// ParseKey splits a member key into the template's fields.
func (a *Accessor) ParseKey(key string) (map[string]string, error) {
	if a.template == "" {
		return nil, ErrTemplateUnset
	}
	parts := strings.Split(key, separator)
	if len(parts) != len(a.fields) {
		return nil, fmt.Errorf("%w: %q has %d elements, %q has %d",
			ErrKeyFormat, key, len(parts), a.template, len(a.fields))
	}
	out := make(map[string]string, len(parts))
	for i, f := range a.fields {
		out[f] = parts[i]
	}
	return out, nil
}

// Select returns the keys whose fields match every entry of filter.
func (a *Accessor) Select(keys []string, filter map[string]string) ([]string, error) {
	var out []string
	for _, k := range keys {
		parsed, err := a.ParseKey(k)
		if err != nil {
			return nil, err
		}
		match := true
		for f, v := range filter {
			if parsed[f] != v {
				match = false
				break
			}
		}
		if match {
			out = append(out, k)
		}
	}
	return out, nil
}

// Group collects keys by the value of one template field, in order of
// first appearance.
func (a *Accessor) Group(keys []string, field string) ([]string, map[string][]string, error) {
	fields, err := a.Fields()
	if err != nil {
		return nil, nil, err
	}
	if !slices.Contains(fields, field) {
		return nil, nil, fmt.Errorf("%w: unknown field %q", ErrKeyFormat, field)
	}

	var order []string
	groups := make(map[string][]string)
	for _, k := range keys {
		parsed, err := a.ParseKey(k)
		if err != nil {
			return nil, nil, err
		}
		v := parsed[field]
		if _, ok := groups[v]; !ok {
			order = append(order, v)
		}
		groups[v] = append(groups[v], k)
	}
	return order, groups, nil
}

/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package datamodel

import (
	"context"
	"fmt"
	"sync"
)

// Getter supplies an attribute's value from live system state on every
// read, bypassing the stored value.
type Getter func(ctx context.Context) (Value, error)

// Setter handles writes to an attribute instead of replacing the stored
// value.
type Setter func(ctx context.Context, value Value) error

// Attribute is one named, typed registry entry, either directly stored or
// computed through its Getter.
type Attribute struct {
	Name   string
	Kind   Kind
	Value  Value
	Getter Getter
	Setter Setter
}

// Registry is the ordered, process-lifetime collection of attributes.
// Name resolution returns the first match in declaration order: schema
// entries precede built-ins, so a schema entry may shadow a built-in name.
//
// The bus runtime delivers get/set callbacks on its own goroutines, so all
// access goes through a single reader/writer lock.
type Registry struct {
	mu    sync.RWMutex
	attrs []Attribute
}

// NewRegistry builds a registry from attributes in their final order. The
// attribute slice is owned by the registry after this call.
func NewRegistry(attrs []Attribute) *Registry {
	return &Registry{attrs: attrs}
}

// Len returns the fixed attribute count.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.attrs)
}

func (r *Registry) lookup(name string) int {
	for i := range r.attrs {
		if r.attrs[i].Name == name {
			return i
		}
	}

	return -1
}

// Get resolves name to the first matching attribute and returns its
// current value. Computed attributes invoke their provider; its error is
// propagated unchanged. Plain attributes return the stored value by copy.
func (r *Registry) Get(ctx context.Context, name string) (Value, error) {
	r.mu.RLock()

	idx := r.lookup(name)
	if idx < 0 {
		r.mu.RUnlock()
		return Value{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	attr := &r.attrs[idx]
	if attr.Getter == nil {
		value := attr.Value
		r.mu.RUnlock()

		return value, nil
	}

	getter := attr.Getter
	r.mu.RUnlock()

	return getter(ctx)
}

// Set resolves name and writes value. A custom setter, when present, takes
// over entirely. Otherwise the incoming kind must match the attribute's
// declared kind exactly (no coercion) and the stored value is replaced.
func (r *Registry) Set(ctx context.Context, name string, value Value) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.lookup(name)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	attr := &r.attrs[idx]
	if attr.Setter != nil {
		return attr.Setter(ctx, value)
	}

	if value.Kind() != attr.Kind {
		return fmt.Errorf("%w: attribute %s is %s, got %s",
			ErrTypeMismatch, name, attr.Kind, value.Kind())
	}

	attr.Value = value

	return nil
}

// ForEach resolves every attribute's current value in registry order and
// invokes fn with it, stopping at the first error fn returns. Used once at
// startup to publish initial values. Provider failures are passed to fn as
// err with a zero value so one failing attribute does not hide the rest.
func (r *Registry) ForEach(ctx context.Context, fn func(name string, value Value, err error) error) error {
	r.mu.RLock()

	type entry struct {
		name   string
		value  Value
		getter Getter
	}

	entries := make([]entry, len(r.attrs))
	for i := range r.attrs {
		entries[i] = entry{
			name:   r.attrs[i].Name,
			value:  r.attrs[i].Value,
			getter: r.attrs[i].Getter,
		}
	}

	r.mu.RUnlock()

	for i := range entries {
		value, err := entries[i].value, error(nil)
		if entries[i].getter != nil {
			value, err = entries[i].getter(ctx)
		}

		if cbErr := fn(entries[i].name, value, err); cbErr != nil {
			return cbErr
		}
	}

	return nil
}

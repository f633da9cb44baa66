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

// Package datamodel implements the typed attribute registry: the value
// model, the schema loader and the name-keyed get/set dispatch.
package datamodel

import (
	"fmt"
	"strconv"
)

// Kind identifies the type of a Value. The numeric codes are part of the
// external schema format and must not be reordered.
type Kind uint8

const (
	KindString   Kind = 0
	KindInt32    Kind = 1
	KindUInt32   Kind = 2
	KindBool     Kind = 3
	KindDateTime Kind = 4
	KindBase64   Kind = 5
	KindInt64    Kind = 6
	KindUInt64   Kind = 7
	KindFloat32  Kind = 8
	KindFloat64  Kind = 9
	KindByte     Kind = 10
)

var kindNames = map[Kind]string{
	KindString:   "string",
	KindInt32:    "int32",
	KindUInt32:   "uint32",
	KindBool:     "bool",
	KindDateTime: "datetime",
	KindBase64:   "base64",
	KindInt64:    "int64",
	KindUInt64:   "uint64",
	KindFloat32:  "float32",
	KindFloat64:  "float64",
	KindByte:     "byte",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// IsStringLike reports whether values of this kind carry a text payload.
func (k Kind) IsStringLike() bool {
	return k == KindString || k == KindDateTime || k == KindBase64
}

// Value is an immutable tagged value. The zero Value is a KindString
// holding the empty string. Values of the same kind compare with ==.
type Value struct {
	kind Kind
	str  string
	i    int64
	u    uint64
	f    float64
	b    bool
}

// ZeroValue returns the default value for a kind: empty string, zero or
// false.
func ZeroValue(kind Kind) Value {
	return Value{kind: kind}
}

func StringValue(s string) Value   { return Value{kind: KindString, str: s} }
func DateTimeValue(s string) Value { return Value{kind: KindDateTime, str: s} }
func Base64Value(s string) Value   { return Value{kind: KindBase64, str: s} }
func Int32Value(v int32) Value     { return Value{kind: KindInt32, i: int64(v)} }
func UInt32Value(v uint32) Value   { return Value{kind: KindUInt32, u: uint64(v)} }
func BoolValue(v bool) Value       { return Value{kind: KindBool, b: v} }
func Int64Value(v int64) Value     { return Value{kind: KindInt64, i: v} }
func UInt64Value(v uint64) Value   { return Value{kind: KindUInt64, u: v} }
func Float32Value(v float32) Value { return Value{kind: KindFloat32, f: float64(v)} }
func Float64Value(v float64) Value { return Value{kind: KindFloat64, f: v} }
func ByteValue(v byte) Value       { return Value{kind: KindByte, u: uint64(v)} }

// TextValue builds a string-like value of the given kind. Non string-like
// kinds fall back to KindString.
func TextValue(kind Kind, s string) Value {
	if !kind.IsStringLike() {
		kind = KindString
	}

	return Value{kind: kind, str: s}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) Text() string     { return v.str }
func (v Value) Int32() int32     { return int32(v.i) }
func (v Value) UInt32() uint32   { return uint32(v.u) }
func (v Value) Bool() bool       { return v.b }
func (v Value) Int64() int64     { return v.i }
func (v Value) UInt64() uint64   { return v.u }
func (v Value) Float32() float32 { return float32(v.f) }
func (v Value) Float64() float64 { return v.f }
func (v Value) Byte() byte       { return byte(v.u) }

// String renders the payload as text, used for event publication and
// logging.
func (v Value) String() string {
	switch v.kind {
	case KindString, KindDateTime, KindBase64:
		return v.str
	case KindInt32, KindInt64:
		return strconv.FormatInt(v.i, 10)
	case KindUInt32, KindUInt64, KindByte:
		return strconv.FormatUint(v.u, 10)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindFloat32:
		return strconv.FormatFloat(v.f, 'g', -1, 32)
	case KindFloat64:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	default:
		return ""
	}
}

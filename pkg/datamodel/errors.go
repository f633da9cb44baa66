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

import "errors"

var (
	// ErrNotFound is returned when no attribute matches the requested name.
	ErrNotFound = errors.New("attribute not found")
	// ErrTypeMismatch is returned when a set carries a value whose kind does
	// not match the attribute's declared kind.
	ErrTypeMismatch = errors.New("value kind does not match attribute kind")
	// ErrInvalidDeclaration is returned when a schema record has a missing or
	// malformed name or type code.
	ErrInvalidDeclaration = errors.New("invalid attribute declaration")
	// ErrOutOfRange is returned when a schema literal does not fit the
	// declared kind's representable range.
	ErrOutOfRange = errors.New("value out of range for declared kind")
	// ErrAcquisition is returned by computed providers when the underlying
	// OS query fails.
	ErrAcquisition = errors.New("failed to acquire system value")

	errNameTooLong = errors.New("attribute name exceeds 255 bytes")
	errEmptySchema = errors.New("schema declares no attributes")
)

// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"errors"
	"fmt"
	"strings"
)

// Domain validation errors
var (
	// ErrInvalidLanguagePair indicates a language pair is not of the form "xx-yy".
	ErrInvalidLanguagePair = errors.New("invalid language pair")

	// ErrEmptyLanguageCode indicates one side of a language pair is empty.
	ErrEmptyLanguageCode = errors.New("language code cannot be empty")

	// ErrLanguageNotAvailable indicates a source language outside the opened pair.
	ErrLanguageNotAvailable = errors.New("source language not available")

	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrEmptyDocument indicates both display fields of a Document are empty.
	ErrEmptyDocument = errors.New("document has no text")
)

// LanguageNotAvailableError reports a requested source language together
// with the two languages the pair offers.
type LanguageNotAvailableError struct {
	Language  string
	Available []string
}

func (e *LanguageNotAvailableError) Error() string {
	return fmt.Sprintf("source language %s not available. Available are: %s",
		e.Language, strings.Join(e.Available, ", "))
}

// Is reports whether target is ErrLanguageNotAvailable.
func (e *LanguageNotAvailableError) Is(target error) bool {
	return target == ErrLanguageNotAvailable
}

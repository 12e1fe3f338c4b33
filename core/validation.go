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
	"fmt"
	"strings"
)

// ValidateLanguagePair validates a LanguagePair according to domain rules.
//
// Validation rules:
//   - Both codes must be non-empty
//   - Neither code may contain a hyphen or whitespace
func ValidateLanguagePair(pair LanguagePair) error {
	for _, code := range []string{pair.Left, pair.Right} {
		if code == "" {
			return fmt.Errorf("%w: %w", ErrInvalidLanguagePair, ErrEmptyLanguageCode)
		}
		if strings.ContainsAny(code, "- \t") {
			return fmt.Errorf("%w: code %q", ErrInvalidLanguagePair, code)
		}
	}
	return nil
}

// ValidateDocument validates a Document before it is indexed.
//
// Validation rules:
//   - Document must not be nil
//   - At least one display field must carry text
//
// NOT validated:
//   - Key and extra fields (empty after normalization is legal)
//   - ID (assigned by the index writer)
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}
	if doc.LangLeft == "" && doc.LangRight == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyDocument)
	}
	return nil
}

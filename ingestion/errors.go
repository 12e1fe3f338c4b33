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


package ingestion

import "errors"

var (
	// ErrRootRequired is returned when no data directory is provided.
	ErrRootRequired = errors.New("data directory required")

	// ErrNoLanguagePair is returned when the source has no header naming a pair.
	ErrNoLanguagePair = errors.New("source header does not name a language pair")

	// ErrAlreadyImported is returned when the pair exists and force is not set.
	ErrAlreadyImported = errors.New("language pair already imported")

	// ErrNotDirectory is returned when the pair path exists but is not a directory.
	ErrNotDirectory = errors.New("language pair path is not a directory")
)

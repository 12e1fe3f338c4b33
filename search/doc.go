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


// Package search evaluates dictionary lookups against an index.
//
// Queries are built from a small algebra (term, fuzzy term, prefix, phrase
// and boolean queries) whose results are sets of document IDs. A lookup
// combines two parts:
//   - every query term must fuzzily match a term of the source key field
//   - or the whole expression occurs verbatim in the source annotations
//
// Fuzzy matching uses the optimal string alignment distance over whole
// terms, so a transposition of two adjacent letters costs one edit.
package search

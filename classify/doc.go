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


// Package classify assigns ticket text to a support category.
//
// The primary path is a supervised model: TF-IDF features (vocabulary
// capped at 1000 terms, English stop words removed) feeding a one-vs-rest
// linear SVM. Training splits 80/20 with a fixed seed and reports
// accuracy plus per-class precision/recall/F1 on the held-out side. The
// fitted vectorizer and classifier persist together as two co-located
// JSON files; loading one without the other is an error.
//
// Strategies compose into a Chain: supervised model first, zero-shot LLM
// classification second, and a terminal default category last. The chain
// never fails: every input resolves to a ClassificationOutcome whose
// Method field records which path produced the label.
package classify

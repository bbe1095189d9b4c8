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


package classify

import "errors"

var (
	// ErrEmptyDataset indicates a training set with no usable rows after
	// dropping nulls.
	ErrEmptyDataset = errors.New("training dataset is empty")

	// ErrTooFewCategories indicates fewer than 2 distinct categories in
	// the training data.
	ErrTooFewCategories = errors.New("training requires at least 2 distinct categories")

	// ErrModelNotTrained indicates no persisted model artifact exists.
	ErrModelNotTrained = errors.New("no trained model available")

	// ErrArtifactIncomplete indicates exactly one of the two co-located
	// artifact files is present. The vectorizer and classifier are one
	// unit; using one without the other is an error.
	ErrArtifactIncomplete = errors.New("model artifact is incomplete")

	// ErrNotFitted indicates a vectorizer or classifier used before Fit.
	ErrNotFitted = errors.New("not fitted")

	// ErrEmptyInput indicates blank text submitted for classification.
	ErrEmptyInput = errors.New("input text is empty")
)

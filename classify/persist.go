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

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	vectorizerFile = "vectorizer.json"
	classifierFile = "classifier.json"
)

// Save persists the model as two co-located files under dir, creating the
// directory if needed.
func (m *Model) Save(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(dir, vectorizerFile), m.Vectorizer); err != nil {
		return err
	}
	return writeJSON(filepath.Join(dir, classifierFile), m.Classifier)
}

// LoadModel loads a persisted model from dir. Both artifact files must be
// present: neither means ErrModelNotTrained, exactly one means
// ErrArtifactIncomplete.
func LoadModel(dir string) (*Model, error) {
	vectorizerPath := filepath.Join(dir, vectorizerFile)
	classifierPath := filepath.Join(dir, classifierFile)

	haveVectorizer := fileExists(vectorizerPath)
	haveClassifier := fileExists(classifierPath)

	switch {
	case !haveVectorizer && !haveClassifier:
		return nil, fmt.Errorf("%w: %s", ErrModelNotTrained, dir)
	case haveVectorizer != haveClassifier:
		return nil, fmt.Errorf("%w: expected both %s and %s in %s",
			ErrArtifactIncomplete, vectorizerFile, classifierFile, dir)
	}

	model := &Model{Vectorizer: &Vectorizer{}, Classifier: &LinearSVM{}}
	if err := readJSON(vectorizerPath, model.Vectorizer); err != nil {
		return nil, err
	}
	if err := readJSON(classifierPath, model.Classifier); err != nil {
		return nil, err
	}
	return model, nil
}

func writeJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Package seed loads the example questions used to populate an empty
// question store.
package seed

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/bloops-games/quiz/internal/database/question/model"
	"gopkg.in/yaml.v3"
)

//go:embed examples.yaml
var examples []byte

// Load parses the YAML question file at path, or the embedded examples when
// path is empty. Every returned question has fresh ids.
func Load(path string) ([]model.Question, error) {
	data := examples
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
		data = b
	}

	return Parse(data)
}

func Parse(data []byte) ([]model.Question, error) {
	var inputs []model.QuestionInput
	if err := yaml.Unmarshal(data, &inputs); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	questions := make([]model.Question, 0, len(inputs))
	for i, in := range inputs {
		q, err := model.NewQuestion(in)
		if err != nil {
			return nil, fmt.Errorf("seed question %d: %w", i, err)
		}
		questions = append(questions, q)
	}

	return questions, nil
}

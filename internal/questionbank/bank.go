// Package questionbank serves the fixed generic-track question bank, loaded
// once from an embedded YAML file.
package questionbank

import (
	_ "embed"
	"fmt"
	"math/rand"

	"gopkg.in/yaml.v3"

	"nexprep/interview/internal/models"
)

//go:embed questions.yaml
var bankYAML []byte

type bankEntry struct {
	ID          string `yaml:"id"`
	Text        string `yaml:"text"`
	IdealAnswer string `yaml:"ideal_answer"`
}

type bankFile struct {
	Opener    string      `yaml:"opener"`
	Questions []bankEntry `yaml:"questions"`
}

type Bank struct {
	opener    models.Question
	remaining []models.Question
}

// Load parses the embedded bank.
func Load() (*Bank, error) {
	var file bankFile
	if err := yaml.Unmarshal(bankYAML, &file); err != nil {
		return nil, fmt.Errorf("failed to parse question bank: %w", err)
	}
	if len(file.Questions) == 0 {
		return nil, fmt.Errorf("question bank is empty")
	}

	bank := &Bank{}
	for _, entry := range file.Questions {
		q := models.Question{
			ID:             entry.ID,
			Text:           entry.Text,
			CompetencyType: "behavioral",
			HintsAvailable: true,
			IdealAnswer:    entry.IdealAnswer,
		}
		if entry.ID == file.Opener {
			bank.opener = q
			continue
		}
		bank.remaining = append(bank.remaining, q)
	}
	if bank.opener.ID == "" {
		return nil, fmt.Errorf("opener %q not present in question bank", file.Opener)
	}
	return bank, nil
}

// Size returns the full bank size including the opener.
func (b *Bank) Size() int {
	return len(b.remaining) + 1
}

// Select draws a session's question sequence: the canonical opener first,
// then a Fisher-Yates shuffled unique sample of the rest. Chosen once at
// session start and fixed for the session's lifetime.
func (b *Bank) Select(total int, rng *rand.Rand) []models.Question {
	if total < 1 {
		total = 1
	}
	if total > b.Size() {
		total = b.Size()
	}

	pool := make([]models.Question, len(b.remaining))
	copy(pool, b.remaining)
	for i := len(pool) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		pool[i], pool[j] = pool[j], pool[i]
	}

	selected := make([]models.Question, 0, total)
	selected = append(selected, b.opener)
	selected = append(selected, pool[:total-1]...)

	for i := range selected {
		selected[i].Difficulty = models.DifficultyForIndex(i + 1)
	}
	return selected
}

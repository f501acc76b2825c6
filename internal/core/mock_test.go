package core

import (
	"context"
	"fmt"

	"github.com/agenthands/clutch/internal/core/model"
	"github.com/agenthands/clutch/internal/snapshot"
)

type MockSnapshots struct {
	Snapshots map[string]snapshot.Snapshot
}

func (m *MockSnapshots) Get(ctx context.Context, id string) (snapshot.Snapshot, error) {
	s, ok := m.Snapshots[id]
	if !ok {
		return snapshot.Snapshot{}, fmt.Errorf("%w: %s", snapshot.ErrNotFound, id)
	}
	return s, nil
}

type MockLLM struct {
	Response string
	Err      error
	Prompts  []string
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

var ballPython = model.Catalog{
	Species: "ball_python",
	Name:    "Ball Python",
	Genes: []model.GeneDefinition{
		{Key: "pastel", Name: "Pastel", Mode: model.IncompleteDominant},
		{Key: "cinnamon", Name: "Cinnamon", Mode: model.IncompleteDominant, IncompatibleWith: []string{"black_pastel"}},
		{Key: "black_pastel", Name: "Black Pastel", Mode: model.IncompleteDominant},
		{Key: "clown", Name: "Clown", Mode: model.Recessive},
		{Key: "spider", Name: "Spider", Mode: model.Dominant},
	},
}

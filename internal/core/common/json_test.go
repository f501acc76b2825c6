package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reply struct {
	Genes []string `json:"genes"`
}

func TestParseJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"bare", `{"genes":["clown"]}`, []string{"clown"}},
		{"prose", `Sure! {"genes":["pastel","clown"]} Hope that helps.`, []string{"pastel", "clown"}},
		{"fenced", "```json\n{\"genes\":[\"spider\"]}\n```", []string{"spider"}},
		{"fence with trailing brace text", "```\n{\"genes\":[]}\n```\nnote: {x}", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseJSON[reply](tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Genes)
		})
	}
}

func TestParseJSON_Errors(t *testing.T) {
	_, err := ParseJSON[reply]("no json here")
	assert.Error(t, err)

	_, err = ParseJSON[reply]("} backwards {")
	assert.Error(t, err)

	_, err = ParseJSON[reply](`{"genes": "clown"}`)
	assert.Error(t, err)
}

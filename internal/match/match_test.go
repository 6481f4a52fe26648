package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkills_EmptyLists(t *testing.T) {
	r := Skills(nil, []string{"Go", "SQL"})
	assert.Equal(t, 0, r.MatchScore)
	assert.Empty(t, r.MatchedSkills)
	assert.Equal(t, []string{"Go", "SQL"}, r.MissingSkills)

	r = Skills([]string{"Go"}, nil)
	assert.Equal(t, 0, r.MatchScore)
	assert.NotNil(t, r.MatchedSkills)
	assert.Empty(t, r.MatchedSkills)
	assert.NotNil(t, r.MissingSkills)
	assert.Empty(t, r.MissingSkills)
}

func TestSkills_Alias(t *testing.T) {
	r := Skills([]string{"JS"}, []string{"JavaScript"})
	assert.Equal(t, []string{"JS"}, r.MatchedSkills)
	assert.Empty(t, r.MissingSkills)
	assert.Equal(t, 100, r.MatchScore)
}

func TestSkills_AliasReverse(t *testing.T) {
	r := Skills([]string{"Modern JavaScript (ES2022)"}, []string{"js"})
	assert.Equal(t, 100, r.MatchScore)
}

func TestSkills_Substring(t *testing.T) {
	r := Skills([]string{"React"}, []string{"ReactJS", "Node"})
	assert.Equal(t, []string{"React"}, r.MatchedSkills)
	assert.Equal(t, []string{"Node"}, r.MissingSkills)
	assert.Equal(t, 50, r.MatchScore)
	assert.InDelta(t, 50.0, r.RawScore, 1e-9)
}

func TestSkills_CaseAndWhitespaceInsensitive(t *testing.T) {
	r := Skills([]string{"  PYTHON "}, []string{"python"})
	assert.Equal(t, []string{"  PYTHON "}, r.MatchedSkills, "output keeps input spelling")
	assert.Equal(t, 100, r.MatchScore)
}

func TestSkills_BlankNeverMatches(t *testing.T) {
	r := Skills([]string{"", "   "}, []string{"Go"})
	assert.Empty(t, r.MatchedSkills)
	assert.Equal(t, []string{"Go"}, r.MissingSkills)
	assert.Equal(t, 0, r.MatchScore)
}

func TestSkills_ClampsAtHundred(t *testing.T) {
	// Three candidate skills all match the single job skill.
	r := Skills([]string{"Go", "Golang", "Go modules"}, []string{"go"})
	assert.Len(t, r.MatchedSkills, 3)
	assert.Empty(t, r.MissingSkills)
	assert.InDelta(t, 300.0, r.RawScore, 1e-9)
	assert.Equal(t, 100, r.MatchScore)
}

func TestSkills_Rounding(t *testing.T) {
	r := Skills([]string{"Go"}, []string{"Go", "Rust", "Zig"})
	assert.Equal(t, 33, r.MatchScore)

	r = Skills([]string{"Go", "Rust"}, []string{"Go", "Rust", "Zig"})
	assert.Equal(t, 67, r.MatchScore)
}

func TestSkills_DefaultJobSkills(t *testing.T) {
	r := Skills([]string{"React", "Node.js", "Rust"}, DefaultJobSkills)
	assert.Equal(t, []string{"React", "Node.js"}, r.MatchedSkills)
	assert.Len(t, r.MissingSkills, len(DefaultJobSkills)-2)
	assert.Equal(t, 13, r.MatchScore)
}

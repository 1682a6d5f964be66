package eval

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadCases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.json")
	data := `[
  {"id":"core-1","query":"what is langgraph?","must_refuse":false,"category":"core","expected_sources":["langgraph_intro.md"]},
  {"id":"ood-1","query":"who won the 2022 world cup?","must_refuse":true,"category":"out_of_domain","expected_sources":[]}
]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cases, err := LoadCases(path)
	require.NoError(t, err)
	require.Len(t, cases, 2)
	require.True(t, cases[1].MustRefuse)
	require.Equal(t, []string{"langgraph_intro.md"}, cases[0].ExpectedSources)
}

func TestLoadCasesRejectsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	_, err := LoadCases(path)
	require.ErrorContains(t, err, "no cases")
}

func TestLoadCasesRejectsBlankID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"  ","query":"q"}]`), 0o644))

	_, err := LoadCases(path)
	require.ErrorContains(t, err, "has no id")
}

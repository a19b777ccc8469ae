package diagnosis

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKnowledgeBaseOrder(t *testing.T) {
	kb := DefaultKnowledgeBase()
	want := []string{
		"flu", "common cold", "asthma", "covid-19", "pneumonia", "migraine", "diabetes",
		"hypertension", "arthritis", "appendicitis", "tuberculosis", "depression",
		"conjunctivitis", "food_poisoning",
	}
	entries := kb.Entries()
	require.Len(t, entries, len(want))
	for i, name := range want {
		assert.Equal(t, name, entries[i].Name)
	}
	assert.Equal(t, len(want), kb.Len())
}

func TestDefaultKnowledgeBaseSpecialists(t *testing.T) {
	kb := DefaultKnowledgeBase()
	assert.Equal(t, "Infectious Disease Specialist", kb.Specialist("covid-19"))
	assert.Equal(t, "Gastroenterologist", kb.Specialist("food_poisoning"))
	assert.Equal(t, "Pulmonologist", kb.Specialist("tuberculosis"))
	assert.Equal(t, FallbackSpecialist, kb.Specialist("scurvy"))
}

func TestAllSymptomsSortedAndDistinct(t *testing.T) {
	kb := DefaultKnowledgeBase()
	all := kb.AllSymptoms()
	assert.True(t, sort.StringsAreSorted(all))
	seen := map[string]bool{}
	for _, s := range all {
		assert.False(t, seen[s], "duplicate %q", s)
		seen[s] = true
	}
	assert.Len(t, all, 32)
	assert.Equal(t, "abdominal_pain", all[0])
	assert.Equal(t, "wheezing", all[len(all)-1])
}

func TestEntriesReturnsCopies(t *testing.T) {
	kb := DefaultKnowledgeBase()
	entries := kb.Entries()
	entries[0].Name = "changed"
	entries[0].Symptoms[0] = "changed"
	all := kb.AllSymptoms()
	all[0] = "changed"

	flu, ok := kb.Lookup("flu")
	require.True(t, ok)
	assert.Equal(t, []string{"fever", "cough", "body_ache", "fatigue"}, flu.Symptoms)
	assert.Equal(t, "abdominal_pain", kb.AllSymptoms()[0])
}

func TestMissingSpecialistFallsBack(t *testing.T) {
	kb, err := NewKnowledgeBase([]Entry{{Name: "gout", Symptoms: []string{"Joint Pain"}}}, DefaultConnector)
	require.NoError(t, err)
	assert.Equal(t, FallbackSpecialist, kb.Specialist("gout"))
	assert.Equal(t, []string{"joint_pain"}, kb.AllSymptoms())
}

func TestNewKnowledgeBaseRejectsInvalidTables(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
	}{
		{name: "empty", entries: nil},
		{name: "unnamed", entries: []Entry{{Symptoms: []string{"fever"}}}},
		{name: "duplicate", entries: []Entry{
			{Name: "flu", Symptoms: []string{"fever"}},
			{Name: "flu", Symptoms: []string{"cough"}},
		}},
		{name: "no symptoms", entries: []Entry{{Name: "flu", Symptoms: []string{" "}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewKnowledgeBase(tt.entries, DefaultConnector)
			assert.ErrorIs(t, err, ErrInvalidKnowledgeBase)
		})
	}
}

func TestExportAndLoadKnowledgeBase(t *testing.T) {
	for _, name := range []string{"kb.yaml", "kb.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, ExportKnowledgeBase(path, DefaultKnowledgeBase()))

			kb, err := LoadKnowledgeBase(path, DefaultConnector)
			require.NoError(t, err)
			assert.Equal(t, DefaultKnowledgeBase().Entries(), kb.Entries())
		})
	}
}

func TestLoadKnowledgeBaseYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yml")
	content := `diseases:
  - name: sinusitis
    specialist: ENT Specialist
    symptoms: [Facial Pain, "runny nose", headache]
  - name: gastritis
    symptoms:
      - abdominal pain
      - nausea
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	kb, err := LoadKnowledgeBase(path, DefaultConnector)
	require.NoError(t, err)
	entries := kb.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "sinusitis", entries[0].Name)
	assert.Equal(t, []string{"facial_pain", "runny_nose", "headache"}, entries[0].Symptoms)
	assert.Equal(t, "ENT Specialist", kb.Specialist("sinusitis"))
	assert.Equal(t, FallbackSpecialist, kb.Specialist("gastritis"))
}

func TestLoadKnowledgeBaseErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadKnowledgeBase(filepath.Join(dir, "missing.yaml"), DefaultConnector)
	assert.ErrorIs(t, err, os.ErrNotExist)

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte("{not json"), 0o644))
	_, err = LoadKnowledgeBase(broken, DefaultConnector)
	assert.ErrorIs(t, err, ErrInvalidKnowledgeBase)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("diseases: []\n"), 0o644))
	_, err = LoadKnowledgeBase(empty, DefaultConnector)
	assert.ErrorIs(t, err, ErrInvalidKnowledgeBase)
}

func TestLoadKnowledgeBaseEmptyPathUsesBuiltIn(t *testing.T) {
	kb, err := LoadKnowledgeBase("  ", DefaultConnector)
	require.NoError(t, err)
	assert.Equal(t, DefaultEntries(), kb.Entries())
}

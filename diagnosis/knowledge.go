package diagnosis

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// DefaultEntries returns the built-in disease table in its canonical order.
func DefaultEntries() []Entry {
	return []Entry{
		{Name: "flu", Symptoms: []string{"fever", "cough", "body_ache", "fatigue"}, Specialist: "General Physician"},
		{Name: "common cold", Symptoms: []string{"cough", "sore_throat", "runny_nose"}, Specialist: "General Physician"},
		{Name: "asthma", Symptoms: []string{"shortness_breath", "wheezing", "cough"}, Specialist: "Pulmonologist"},
		{Name: "covid-19", Symptoms: []string{"fever", "loss_smell", "cough", "sore_throat"}, Specialist: "Infectious Disease Specialist"},
		{Name: "pneumonia", Symptoms: []string{"fever", "cough", "shortness_breath", "chest_pain"}, Specialist: "Pulmonologist"},
		{Name: "migraine", Symptoms: []string{"headache", "blurred_vision", "nausea"}, Specialist: "Neurologist"},
		{Name: "diabetes", Symptoms: []string{"fatigue", "thirst", "frequent_urination", "blurred_vision"}, Specialist: "Endocrinologist"},
		{Name: "hypertension", Symptoms: []string{"headache", "dizziness", "blurred_vision"}, Specialist: "Cardiologist"},
		{Name: "arthritis", Symptoms: []string{"joint_pain", "stiffness", "swelling"}, Specialist: "Rheumatologist"},
		{Name: "appendicitis", Symptoms: []string{"abdominal_pain", "vomiting", "loss_appetite", "fever"}, Specialist: "General Surgeon"},
		{Name: "tuberculosis", Symptoms: []string{"chronic_cough", "weight_loss", "night_sweats", "chest_pain"}, Specialist: "Pulmonologist"},
		{Name: "depression", Symptoms: []string{"fatigue", "loss_interest", "sadness", "sleep_disturbance"}, Specialist: "Psychiatrist"},
		{Name: "conjunctivitis", Symptoms: []string{"red_eyes", "itchy_eyes", "eye_discharge"}, Specialist: "Ophthalmologist"},
		{Name: "food_poisoning", Symptoms: []string{"vomiting", "diarrhea", "nausea", "abdominal_pain"}, Specialist: "Gastroenterologist"},
	}
}

type disease struct {
	name       string
	symptoms   []string
	symptomSet map[string]struct{}
	specialist string
}

// KnowledgeBase is an immutable, ordered disease table. It is safe for concurrent use.
type KnowledgeBase struct {
	diseases []disease
	byName   map[string]int
	symptoms []string
}

// NewKnowledgeBase validates the entries and builds a knowledge base. Symptom
// labels are normalized with connector; declaration order is preserved.
func NewKnowledgeBase(entries []Entry, connector string) (*KnowledgeBase, error) {
	if len(entries) == 0 {
		return nil, invalidKnowledgeBase("no diseases defined")
	}
	kb := &KnowledgeBase{
		diseases: make([]disease, 0, len(entries)),
		byName:   make(map[string]int, len(entries)),
	}
	all := make(map[string]struct{})
	for i, entry := range entries {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			return nil, invalidKnowledgeBase("entry %d has no name", i+1)
		}
		if _, dup := kb.byName[name]; dup {
			return nil, invalidKnowledgeBase("duplicate disease %q", name)
		}
		tokens := NormalizeSymptoms(entry.Symptoms, connector)
		if len(tokens) == 0 {
			return nil, invalidKnowledgeBase("disease %q has no symptoms", name)
		}
		set := make(map[string]struct{}, len(tokens))
		for _, t := range tokens {
			set[t] = struct{}{}
			all[t] = struct{}{}
		}
		kb.byName[name] = len(kb.diseases)
		kb.diseases = append(kb.diseases, disease{
			name:       name,
			symptoms:   tokens,
			symptomSet: set,
			specialist: strings.TrimSpace(entry.Specialist),
		})
	}
	kb.symptoms = make([]string, 0, len(all))
	for s := range all {
		kb.symptoms = append(kb.symptoms, s)
	}
	sort.Strings(kb.symptoms)
	return kb, nil
}

// DefaultKnowledgeBase returns the built-in table.
func DefaultKnowledgeBase() *KnowledgeBase {
	kb, err := NewKnowledgeBase(DefaultEntries(), DefaultConnector)
	if err != nil {
		panic(fmt.Sprintf("built-in knowledge base: %v", err))
	}
	return kb
}

// Len returns the number of diseases.
func (kb *KnowledgeBase) Len() int {
	return len(kb.diseases)
}

// Entries returns a copy of the diseases in declaration order.
func (kb *KnowledgeBase) Entries() []Entry {
	out := make([]Entry, len(kb.diseases))
	for i, d := range kb.diseases {
		out[i] = d.entry()
	}
	return out
}

// Lookup returns the named disease.
func (kb *KnowledgeBase) Lookup(name string) (Entry, bool) {
	idx, ok := kb.byName[name]
	if !ok {
		return Entry{}, false
	}
	return kb.diseases[idx].entry(), true
}

// Specialist returns the recommended specialist for a disease, or FallbackSpecialist.
func (kb *KnowledgeBase) Specialist(name string) string {
	if idx, ok := kb.byName[name]; ok && kb.diseases[idx].specialist != "" {
		return kb.diseases[idx].specialist
	}
	return FallbackSpecialist
}

// AllSymptoms lists every distinct symptom token in lexical order.
func (kb *KnowledgeBase) AllSymptoms() []string {
	return cloneStrings(kb.symptoms)
}

func (d disease) entry() Entry {
	return Entry{
		Name:       d.name,
		Symptoms:   cloneStrings(d.symptoms),
		Specialist: d.specialist,
	}
}

type knowledgeFile struct {
	Diseases []Entry `json:"diseases" yaml:"diseases"`
}

// LoadKnowledgeBase reads a YAML or JSON disease table. An empty path returns the built-in table.
func LoadKnowledgeBase(path, connector string) (*KnowledgeBase, error) {
	clean := strings.TrimSpace(path)
	if clean == "" {
		return DefaultKnowledgeBase(), nil
	}
	data, err := os.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}
	var file knowledgeFile
	if err := decodeFile(clean, data, &file); err != nil {
		return nil, fmt.Errorf("decode knowledge base %s: %w", clean, errors.Join(ErrInvalidKnowledgeBase, err))
	}
	kb, err := NewKnowledgeBase(file.Diseases, connector)
	if err != nil {
		return nil, fmt.Errorf("load knowledge base %s: %w", clean, err)
	}
	return kb, nil
}

// ExportKnowledgeBase writes kb in the format LoadKnowledgeBase reads, chosen by extension.
func ExportKnowledgeBase(path string, kb *KnowledgeBase) error {
	clean := strings.TrimSpace(path)
	if clean == "" {
		return errors.New("export path is required")
	}
	data, err := encodeFile(clean, knowledgeFile{Diseases: kb.Entries()})
	if err != nil {
		return fmt.Errorf("encode knowledge base: %w", err)
	}
	if err := writeFileAtomic(clean, data); err != nil {
		return fmt.Errorf("write knowledge base: %w", err)
	}
	return nil
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

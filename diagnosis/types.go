package diagnosis

import "encoding/json"

// TieBreak selects how candidates with equal match counts are ordered.
type TieBreak string

const (
	// TieBreakDeclaration keeps knowledge base declaration order among equal scores.
	TieBreakDeclaration TieBreak = "declaration"
	// TieBreakNameDesc orders equal scores by disease name, descending.
	TieBreakNameDesc TieBreak = "name-desc"
)

// SessionMode chooses between the interactive prompt and the canned demonstration.
type SessionMode string

const (
	// ModeAuto picks interactive when stdin is a terminal, demo otherwise.
	ModeAuto SessionMode = "auto"
	// ModeInteractive prompts for symptom lines until an exit word or end of input.
	ModeInteractive SessionMode = "interactive"
	// ModeDemo runs the canned queries without prompting.
	ModeDemo SessionMode = "demo"
)

// ColorMode controls ANSI styling of the session output.
type ColorMode string

const (
	// ColorAuto styles output only when the terminal supports it.
	ColorAuto ColorMode = "auto"
	// ColorAlways styles output unless NO_COLOR is set.
	ColorAlways ColorMode = "always"
	// ColorNever disables styling.
	ColorNever ColorMode = "never"
)

// DefaultTopK is the number of diagnoses reported per query.
const DefaultTopK = 3

// FallbackSpecialist is reported for a disease without a specialist mapping.
const FallbackSpecialist = "Consult specialist"

// Entry is a single disease of the knowledge base.
type Entry struct {
	Name       string   `json:"name" yaml:"name"`
	Symptoms   []string `json:"symptoms" yaml:"symptoms"`
	Specialist string   `json:"specialist,omitempty" yaml:"specialist,omitempty"`
}

// Result is one ranked diagnosis for a query.
type Result struct {
	Disease    string   `json:"disease"`
	MatchCount int      `json:"matchCount"`
	Specialist string   `json:"specialist"`
	Matched    []string `json:"matched,omitempty"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// Config aggregates runtime settings persisted to symptomcheck.json (or .yaml).
type Config struct {
	TopK              int              `json:"topK" yaml:"topK"`
	TieBreak          TieBreak         `json:"tieBreak" yaml:"tieBreak"`
	Connector         string           `json:"connector" yaml:"connector"`
	KnowledgeBasePath string           `json:"knowledgeBasePath,omitempty" yaml:"knowledgeBasePath,omitempty"`
	Color             ColorMode        `json:"color" yaml:"color"`
	Mode              SessionMode      `json:"mode" yaml:"mode"`
	Log               LogConfig        `json:"log" yaml:"log"`
	// Columns overrides the CSV/TSV header names tried when detecting query columns.
	Columns           ColumnCandidates `json:"columns" yaml:"columns,omitempty"`
}

// Clone creates a deep copy of the configuration so callers can mutate safely.
func (c Config) Clone() Config {
	buf, _ := json.Marshal(c)
	var out Config
	_ = json.Unmarshal(buf, &out)
	return out
}

// ApplyDefaults populates zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.TopK <= 0 {
		c.TopK = DefaultTopK
	}
	if c.TieBreak == "" {
		c.TieBreak = TieBreakDeclaration
	}
	if c.Connector == "" {
		c.Connector = DefaultConnector
	}
	if c.Color == "" {
		c.Color = ColorAuto
	}
	if c.Mode == "" {
		c.Mode = ModeAuto
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
}

// Validate reports settings that cannot be honoured.
func (c Config) Validate() error {
	switch c.TieBreak {
	case TieBreakDeclaration, TieBreakNameDesc:
	default:
		return invalidConfig("unknown tieBreak %q", c.TieBreak)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return invalidConfig("unknown color mode %q", c.Color)
	}
	switch c.Mode {
	case ModeAuto, ModeInteractive, ModeDemo:
	default:
		return invalidConfig("unknown mode %q", c.Mode)
	}
	if c.TopK <= 0 {
		return invalidConfig("topK must be positive, got %d", c.TopK)
	}
	return nil
}

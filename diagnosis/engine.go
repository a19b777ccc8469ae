package diagnosis

import (
	"sort"

	"go.uber.org/zap"
)

// Engine scores queries against a knowledge base. It holds no mutable state
// and is safe for concurrent use.
type Engine struct {
	kb        *KnowledgeBase
	topK      int
	tieBreak  TieBreak
	connector string
	logger    *zap.Logger
}

// NewEngine constructs an engine over kb using the ranking settings in cfg.
func NewEngine(kb *KnowledgeBase, cfg Config, logger *zap.Logger) (*Engine, error) {
	if kb == nil {
		return nil, invalidKnowledgeBase("knowledge base is required")
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		kb:        kb,
		topK:      cfg.TopK,
		tieBreak:  cfg.TieBreak,
		connector: cfg.Connector,
		logger:    logger,
	}, nil
}

// KnowledgeBase returns the table the engine scores against.
func (e *Engine) KnowledgeBase() *KnowledgeBase {
	return e.kb
}

// Diagnose normalizes the raw symptom phrases and returns at most topK
// diseases ranked by the number of shared symptoms. It returns
// ErrEmptySymptomSet when no token survives normalization and ErrNoMatch when
// no disease shares a symptom with the query.
func (e *Engine) Diagnose(raw []string) ([]Result, error) {
	tokens := NormalizeSymptoms(raw, e.connector)
	if len(tokens) == 0 {
		return nil, ErrEmptySymptomSet
	}
	query := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		query[t] = struct{}{}
	}

	type candidate struct {
		order  int
		result Result
	}
	var candidates []candidate
	for i, d := range e.kb.diseases {
		var matched []string
		for _, s := range d.symptoms {
			if _, ok := query[s]; ok {
				matched = append(matched, s)
			}
		}
		if len(matched) == 0 {
			continue
		}
		candidates = append(candidates, candidate{
			order: i,
			result: Result{
				Disease:    d.name,
				MatchCount: len(matched),
				Specialist: e.kb.Specialist(d.name),
				Matched:    matched,
			},
		})
	}
	e.logger.Debug("scored query",
		zap.Strings("tokens", tokens),
		zap.Int("candidates", len(candidates)),
	)
	if len(candidates) == 0 {
		return nil, ErrNoMatch
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.result.MatchCount != b.result.MatchCount {
			return a.result.MatchCount > b.result.MatchCount
		}
		if e.tieBreak == TieBreakNameDesc {
			return a.result.Disease > b.result.Disease
		}
		return a.order < b.order
	})
	if len(candidates) > e.topK {
		candidates = candidates[:e.topK]
	}
	results := make([]Result, len(candidates))
	for i, c := range candidates {
		results[i] = c.result
	}
	return results, nil
}

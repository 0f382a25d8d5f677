package extract

import (
	"context"
	"fmt"

	"github.com/joseph-ayodele/letters-tracker/internal/common"
	"github.com/joseph-ayodele/letters-tracker/internal/core/rules"
)

// RulesExtractor is the FieldExtractor backed by the rule engine.
type RulesExtractor struct {
	engine *rules.Extractor
}

func NewRulesExtractor(engine *rules.Extractor) *RulesExtractor {
	if engine == nil {
		engine = rules.NewExtractor(nil)
	}
	return &RulesExtractor{engine: engine}
}

func (r *RulesExtractor) ExtractFields(ctx context.Context, in rules.Input) (FieldsResult, error) {
	if err := ctx.Err(); err != nil {
		return FieldsResult{}, err
	}
	rec := r.engine.Extract(in)
	b, err := rules.MarshalValidated(rec)
	if err != nil {
		return FieldsResult{Record: rec}, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	return FieldsResult{Record: rec, JSON: b}, nil
}

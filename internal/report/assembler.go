package report

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/francedirectjp-art/astro-medical-system/internal/common/logger"
	"github.com/francedirectjp-art/astro-medical-system/internal/common/metrics"
)

// State tracks a report through the rendering pipeline.
type State string

const (
	StateComputedFacts    State = "COMPUTED_FACTS"
	StateGenerating       State = "GENERATING"
	StateRendered         State = "RENDERED"
	StateFallbackRendered State = "FALLBACK_RENDERED"
)

// Report types as they appear in responses and metrics labels.
const (
	TypeSimple   = "simple"
	TypeDetailed = "detailed"
)

// Rendered is a finished report. State records whether the text came from
// the generation service or from the fallback renderer.
type Rendered struct {
	Type      string            `json:"type"`
	Text      string            `json:"text"`
	Sections  map[string]string `json:"sections,omitempty"`
	CharCount int               `json:"char_count"`
	State     State             `json:"state"`
}

// AssemblerConfig tunes report lengths and the generation deadline.
type AssemblerConfig struct {
	Timeout             time.Duration
	ShortTargetChars    int
	DetailedTargetChars int
	LengthTolerance     float64
}

// Assembler drives the rendering state machine. A request that reaches the
// Assembler always produces a report: generation errors are absorbed into
// the fallback path, never returned to the caller.
type Assembler struct {
	generator Generator
	config    AssemblerConfig
	logger    logger.Logger
}

// NewAssembler creates an Assembler around a Generator.
func NewAssembler(generator Generator, config AssemblerConfig, log logger.Logger) *Assembler {
	return &Assembler{
		generator: generator,
		config:    config,
		logger:    log,
	}
}

// Simple renders the short diagnosis text for one fact bundle.
func (a *Assembler) Simple(ctx context.Context, facts *Facts) *Rendered {
	target := a.config.ShortTargetChars

	genCtx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()

	text, err := a.generator.Generate(genCtx, GenerationRequest{
		TemplateID:  "simple_diagnosis",
		Prompt:      ShortPrompt(facts, target),
		TargetChars: target,
	})
	if err != nil || !a.acceptable(text, target) {
		if err != nil {
			a.logger.Warn("simple generation failed, using fallback", map[string]interface{}{
				"archetype": facts.Archetype.ID,
				"error":     errString(err),
			})
		} else {
			a.logger.Warn("simple generation too short, using fallback", map[string]interface{}{
				"archetype": facts.Archetype.ID,
				"chars":     utf8.RuneCountInString(text),
			})
		}
		metrics.GenerationsTotal.WithLabelValues(TypeSimple, "fallback").Inc()
		metrics.FallbackRenders.WithLabelValues(TypeSimple).Inc()
		return a.finish(TypeSimple, ShortFallback(facts), nil, StateFallbackRendered, target)
	}

	metrics.GenerationsTotal.WithLabelValues(TypeSimple, "rendered").Inc()
	return a.finish(TypeSimple, text, nil, StateRendered, target)
}

// Detailed renders the six-section detailed report. Sections share one
// deadline; a section whose generation fails falls back individually, and a
// single fallback section marks the whole report FALLBACK_RENDERED.
func (a *Assembler) Detailed(ctx context.Context, facts *Facts) *Rendered {
	target := a.config.DetailedTargetChars

	genCtx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()

	sections := make(map[string]string, len(DetailedSections))
	var parts []string
	anyFallback := false

	for _, s := range DetailedSections {
		sectionTarget := s.Target(target)
		text, err := a.generator.Generate(genCtx, GenerationRequest{
			TemplateID:  "detailed_" + s.ID,
			Prompt:      SectionPrompt(facts, s, sectionTarget),
			TargetChars: sectionTarget,
		})
		if err != nil || !a.acceptable(text, sectionTarget) {
			if err != nil {
				a.logger.Warn("section generation failed, using fallback", map[string]interface{}{
					"section": s.ID,
					"error":   errString(err),
				})
			}
			text = DetailedFallbackSection(facts, s)
			anyFallback = true
		}
		sections[s.ID] = text
		parts = append(parts, fmt.Sprintf("【%s】\n\n%s", s.Title, text))
	}

	state := StateRendered
	outcome := "rendered"
	if anyFallback {
		state = StateFallbackRendered
		outcome = "fallback"
		metrics.FallbackRenders.WithLabelValues(TypeDetailed).Inc()
	}
	metrics.GenerationsTotal.WithLabelValues(TypeDetailed, outcome).Inc()

	return a.finish(TypeDetailed, strings.Join(parts, "\n\n"), sections, state, target)
}

// acceptable rejects empty or grossly short output. Text inside a quarter of
// the target is unusable; text merely outside the tolerance band is kept and
// logged by finish.
func (a *Assembler) acceptable(text string, target int) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(text))
	return n > 0 && n >= target/4
}

func (a *Assembler) finish(reportType, text string, sections map[string]string, state State, target int) *Rendered {
	n := utf8.RuneCountInString(text)
	low := int(float64(target) * (1 - a.config.LengthTolerance))
	high := int(float64(target) * (1 + a.config.LengthTolerance))
	if state == StateRendered && (n < low || n > high) {
		a.logger.Warn("report length outside target band", map[string]interface{}{
			"report_type": reportType,
			"chars":       n,
			"target":      target,
		})
	}
	return &Rendered{
		Type:      reportType,
		Text:      text,
		Sections:  sections,
		CharCount: n,
		State:     state,
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

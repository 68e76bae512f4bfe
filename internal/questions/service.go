package questions

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/abhisek/upskill/internal/llm"
	"github.com/abhisek/upskill/internal/logger"
)

// Generator produces assessment question sets.
type Generator interface {
	// Generate always returns exactly req.Count questions. Failures of the
	// AI path are absorbed into a fallback set.
	Generate(ctx context.Context, req Request) Set
}

// Service implements Generator with an optional LLM provider and the
// static fallback bank.
type Service struct {
	provider llm.Provider
	config   Config
	log      *logger.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// Option customizes a Service.
type Option func(*Service)

// WithRand injects the random source used for shuffling and framing.
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) { s.rng = rng }
}

// WithSeed seeds the random source. Zero keeps the time-based seed.
func WithSeed(seed uint64) Option {
	return func(s *Service) {
		if seed != 0 {
			s.rng = rand.New(rand.NewPCG(seed, seed))
		}
	}
}

// New creates a Service. A nil provider means no credential is configured
// and every request is served from the fallback bank.
func New(provider llm.Provider, cfg Config, log *logger.Logger, opts ...Option) *Service {
	if log == nil {
		log = logger.Nop()
	}
	now := uint64(time.Now().UnixNano())
	s := &Service{
		provider: provider,
		config:   cfg,
		log:      log.With("component", "questions"),
		rng:      rand.New(rand.NewPCG(now, now>>1)),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Generate produces a question set for req.
func (s *Service) Generate(ctx context.Context, req Request) Set {
	if req.Count <= 0 {
		req.Count = s.config.DefaultCount
		if req.Count <= 0 {
			req.Count = DefaultConfig().DefaultCount
		}
	}

	if s.provider == nil {
		s.log.Debug("no llm credential configured, using question bank", "assessment", req.Title)
		return s.fallback(req, ReasonNoCredential)
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeAssessmentQuestions)
	resp, err := s.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(req)},
		},
		Reply:       llm.ReplyJSONArray,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	})
	if err != nil {
		var invalidResp *llm.ErrInvalidResponse
		var truncated *llm.ErrMaxTokensExceeded
		switch {
		case errors.Is(err, llm.ErrNotConfigured):
			s.log.Debug("no llm credential configured, using question bank", "assessment", req.Title)
			return s.fallback(req, ReasonNoCredential)
		case errors.As(err, &invalidResp), errors.As(err, &truncated):
			s.log.Warn("malformed question reply, using question bank", "assessment", req.Title, "error", err)
			return s.fallback(req, ReasonInvalidResponse+": "+err.Error())
		}
		s.log.Warn("question generation failed, using question bank", "assessment", req.Title, "error", err)
		return s.fallback(req, ReasonProviderError)
	}

	v := Validate(resp.Content, req)
	if !v.Valid {
		s.log.Warn("malformed question reply, using question bank", "assessment", req.Title, "reason", v.Reason)
		return s.fallback(req, ReasonInvalidResponse+": "+v.Reason)
	}

	s.log.Info("generated assessment questions", "assessment", req.Title, "count", len(v.Questions))
	return Set{Questions: v.Questions, Source: SourceAI}
}

func (s *Service) fallback(req Request, reason string) Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Set{
		Questions: fallbackQuestions(req, req.Count, s.rng, s.config.RoleContextProbability),
		Source:    SourceFallback,
		Reason:    reason,
	}
}

package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Ramsu24/D-Solar-sub001/internal/config"
	"github.com/Ramsu24/D-Solar-sub001/internal/domain"
	"github.com/Ramsu24/D-Solar-sub001/internal/observability"
)

// Source tells where the text of a Response came from.
type Source string

const (
	SourcePackage  Source = "package"
	SourceFAQ      Source = "faq"
	SourceLLM      Source = "llm"
	SourceRejected Source = "rejected"
	SourceError    Source = "error"
)

const (
	// OffTopicReply is sent for messages outside the company's domain.
	OffTopicReply = "I'm D-Solar's assistant, so I can only help with questions about solar energy, our packages and installation services. Is there anything about going solar I can help you with?"
	// ApologyReply is sent when the completion provider fails.
	ApologyReply = "I'm sorry, I'm having trouble answering right now. Please try again in a moment or contact our team directly."
)

// Completion call purposes, used as metric labels.
const (
	purposeClassification = "classification"
	purposeFAQMatch       = "faq_match"
	purposeGeneration     = "generation"
)

// Response is the outcome of routing one message.
type Response struct {
	Text           string `json:"message"`
	Source         Source `json:"source"`
	Intent         Intent `json:"intent"`
	IsPricingQuery bool   `json:"isPricingQuery"`
	Complex        bool   `json:"complex"`
	FAQID          string `json:"faqId,omitempty"`
	PackageCode    string `json:"packageCode,omitempty"`
}

// Options tunes the routing pipeline.
type Options struct {
	DirectMatch          bool
	ConfidenceMatch      bool
	ConfidenceThreshold  float64
	RemoteClassification bool
	DecorateEmoji        bool
	HistoryLimit         int
	ProviderTimeout      time.Duration
	Temperature          float32
	MaxTokens            int
	Matcher              Matcher
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return OptionsFromConfig(config.DefaultConfig())
}

// OptionsFromConfig maps the chat and completion sections onto Options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		DirectMatch:          cfg.Chat.DirectMatch,
		ConfidenceMatch:      cfg.Chat.ConfidenceMatch,
		ConfidenceThreshold:  cfg.Chat.ConfidenceThreshold,
		RemoteClassification: cfg.Chat.RemoteClassification,
		DecorateEmoji:        cfg.Chat.DecorateEmoji,
		HistoryLimit:         cfg.Chat.HistoryLimit,
		ProviderTimeout:      cfg.Chat.ProviderTimeout,
		Temperature:          cfg.Completion.Temperature,
		MaxTokens:            cfg.Completion.MaxTokens,
		Matcher: Matcher{
			DirectThreshold:   cfg.Chat.DirectMatchThreshold,
			RelevantThreshold: cfg.Chat.RelevantThreshold,
			MaxRelevant:       cfg.Chat.MaxRelevant,
		},
	}
}

// Router answers customer messages. Safe for concurrent use.
type Router struct {
	kb       domain.KnowledgeBase
	provider domain.CompletionProvider
	resolver *PackageResolver
	remote   RemoteClassifier
	opts     Options
	log      *observability.Logger
	metrics  *observability.Metrics
}

// NewRouter creates a router. metrics may be nil.
func NewRouter(kb domain.KnowledgeBase, provider domain.CompletionProvider, opts Options, log *observability.Logger, metrics *observability.Metrics) *Router {
	if log == nil {
		log = observability.NopLogger()
	}
	r := &Router{
		kb:       kb,
		provider: provider,
		resolver: NewPackageResolver(kb),
		opts:     opts,
		log:      log,
		metrics:  metrics,
	}
	if opts.RemoteClassification {
		r.remote = CompletionClassifier{Provider: provider}
	}
	return r
}

// WithRemoteClassifier replaces the classifier consulted for ambiguous messages.
func (r *Router) WithRemoteClassifier(c RemoteClassifier) *Router {
	r.remote = c
	return r
}

// Route answers one message given the prior conversation.
// Provider failures become an apology; only knowledge base failures are returned.
func (r *Router) Route(ctx context.Context, message string, history []domain.ChatTurn) (Response, error) {
	start := time.Now()
	log := r.log.WithContext(ctx)

	message = strings.TrimSpace(message)
	if message == "" {
		return Response{}, domain.ValidationError("message is required", nil)
	}

	resp, err := r.route(ctx, log, message, history)
	if err != nil {
		log.Error().Err(err).Msg("Chat routing failed")
		return Response{}, err
	}

	elapsed := time.Since(start)
	r.metrics.ObserveResponse(string(resp.Source), elapsed.Seconds())
	log.Info().
		Str("source", string(resp.Source)).
		Str("intent", string(resp.Intent)).
		Bool("complex", resp.Complex).
		Dur("latency", elapsed).
		Msg("Chat message routed")
	return resp, nil
}

func (r *Router) route(ctx context.Context, log *observability.Logger, message string, history []domain.ChatTurn) (Response, error) {
	pkg, ref, err := r.resolver.Resolve(ctx, message)
	if err != nil {
		return Response{}, err
	}
	if pkg != nil {
		log.Debug().Str("ref", ref.Kind.String()).Str("code", pkg.Code).Msg("Package reference resolved")
		return Response{
			Text:           FormatPackage(*pkg),
			Source:         SourcePackage,
			Intent:         IntentPricing,
			IsPricingQuery: true,
			PackageCode:    pkg.Code,
		}, nil
	}

	if Vetoed(message) && !solarTerms.MatchString(message) {
		log.Debug().Msg("Install request for non-solar software rejected")
		return Response{Text: OffTopicReply, Source: SourceRejected, Intent: IntentOffTopic}, nil
	}

	intent, confidence := ClassifyIntent(message)
	if intent == IntentAmbiguous && r.remote != nil {
		intent = r.classifyRemotely(ctx, log, message)
	}
	complexity := AnalyzeComplexity(message)
	log.Debug().
		Str("intent", string(intent)).
		Float64("confidence", confidence).
		Bool("complex", complexity.Complex).
		Strs("reasons", complexity.Reasons).
		Msg("Message classified")

	base := Response{Intent: intent, IsPricingQuery: intent == IntentPricing, Complex: complexity.Complex}
	if intent == IntentOffTopic {
		base.Text, base.Source = OffTopicReply, SourceRejected
		return base, nil
	}

	faqs, err := r.kb.ListFAQs(ctx)
	if err != nil {
		return Response{}, err
	}

	if r.opts.DirectMatch && !complexity.Complex {
		if best, ok := r.opts.Matcher.BestMatch(message, faqs); ok {
			log.Debug().Str("faq_id", best.FAQ.ID).Int("score", best.Score).Msg("Direct FAQ match")
			base.Text, base.Source, base.FAQID = StripSourceMarkers(best.FAQ.Answer), SourceFAQ, best.FAQ.ID
			return base, nil
		}
	}

	relevant := r.opts.Matcher.Relevant(message, faqs)
	log.Debug().Int("relevant", len(relevant)).Msg("Relevant FAQs gathered")

	if len(relevant) > 0 && !complexity.Complex && r.opts.ConfidenceMatch {
		if faq, ok := r.confidentMatch(ctx, log, message, relevant); ok {
			base.Text, base.Source, base.FAQID = StripSourceMarkers(faq.Answer), SourceFAQ, faq.ID
			return base, nil
		}
	}

	return r.generate(ctx, log, base, message, history, relevant)
}

func (r *Router) classifyRemotely(ctx context.Context, log *observability.Logger, message string) Intent {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	intent, err := r.remote.Classify(ctx, message)
	if err != nil {
		r.metrics.ObserveCompletion(purposeClassification, "error")
		log.Warn().Err(err).Msg("Remote classification failed, treating message as ambiguous")
		return IntentAmbiguous
	}
	r.metrics.ObserveCompletion(purposeClassification, "success")
	return intent
}

func (r *Router) confidentMatch(ctx context.Context, log *observability.Logger, message string, candidates []ScoredCandidate) (domain.FAQ, bool) {
	out, err := r.complete(ctx, purposeFAQMatch, buildFAQMatchTurns(message, candidates), domain.CompletionOptions{
		Temperature:    0,
		MaxTokens:      150,
		ResponseFormat: domain.ResponseFormatJSON,
	})
	if err != nil {
		log.Warn().Err(err).Msg("FAQ confidence check failed")
		return domain.FAQ{}, false
	}

	match, err := ParseStructured[FAQMatch](out)
	if err != nil {
		log.Warn().Err(err).Msg("FAQ confidence output malformed")
		match = FAQMatch{}
	}
	log.Debug().
		Bool("can_answer", match.CanAnswer).
		Str("faq_id", match.BestFAQID).
		Float64("confidence", match.Confidence).
		Msg("FAQ confidence verdict")

	if !match.CanAnswer || match.Confidence < r.opts.ConfidenceThreshold {
		return domain.FAQ{}, false
	}
	for _, c := range candidates {
		if c.FAQ.ID == match.BestFAQID {
			return c.FAQ, true
		}
	}
	return domain.FAQ{}, false
}

func (r *Router) generate(ctx context.Context, log *observability.Logger, base Response, message string, history []domain.ChatTurn, relevant []ScoredCandidate) (Response, error) {
	var pkgs []domain.Package
	if base.IsPricingQuery {
		var err error
		if pkgs, err = r.kb.ListPackages(ctx); err != nil {
			return Response{}, err
		}
	}

	turns := []domain.ChatTurn{{Role: domain.RoleSystem, Content: buildSystemPrompt(relevant, pkgs, base.IsPricingQuery)}}
	turns = append(turns, lastTurns(history, r.opts.HistoryLimit)...)
	turns = append(turns, domain.ChatTurn{Role: domain.RoleUser, Content: message})

	out, err := r.complete(ctx, purposeGeneration, turns, domain.CompletionOptions{
		Temperature: r.opts.Temperature,
		MaxTokens:   r.opts.MaxTokens,
	})
	if err == nil {
		out = CleanCompletion(out)
		if out == "" {
			err = domain.MalformedOutputError("empty completion after cleanup", nil)
		}
	}
	if err != nil {
		log.Error().Err(err).Msg("Completion failed, sending apology")
		base.Text, base.Source = ApologyReply, SourceError
		return base, nil
	}

	base.Text, base.Source = out, SourceLLM
	if id, ok := OverlappingFAQ(out, relevant); ok {
		base.Source, base.FAQID = SourceFAQ, id
	}
	if r.opts.DecorateEmoji {
		base.Text = Decorate(base.Text)
	}
	return base, nil
}

// complete calls the provider under the per-call timeout and records the outcome.
func (r *Router) complete(ctx context.Context, purpose string, turns []domain.ChatTurn, opts domain.CompletionOptions) (string, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	out, err := r.provider.Complete(ctx, turns, opts)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = domain.ProviderError("completion timed out", err)
		}
		r.metrics.ObserveCompletion(purpose, "error")
		return "", err
	}
	r.metrics.ObserveCompletion(purpose, "success")
	return out, nil
}

func (r *Router) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opts.ProviderTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.opts.ProviderTimeout)
}

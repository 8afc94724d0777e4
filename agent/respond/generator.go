// Package respond turns a classified intent and its retrieved data into
// user-facing text through a three-tier provider chain: rotating primary,
// secondary, deterministic template. The template tier never fails.
package respond

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	contractx "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/contract"
	credentialx "github.com/KarthickAravind/AI-procurement-assistant-sub000/agent/credential"
)

// Input carries everything the generator needs for one reply.
type Input struct {
	SessionID string
	Message   string
	Intent    contractx.Intent
	History   []contractx.ConversationMessage
	Retrieved Retrieved
}

// Retrieved is the data the intent handler already fetched. The generator
// only formats it; it performs no retrieval of its own.
type Retrieved struct {
	Suppliers []contractx.SupplierCandidate
	Quote     *contractx.Quote
	Inventory *contractx.InventoryStatus
	Order     *contractx.OrderConfirmation
	Hits      []contractx.SearchHit

	// MissingSlot names the one slot a clarifying reply should ask for.
	MissingSlot string
	// DomainErr is a domain sentinel to explain, not a pipeline failure.
	DomainErr error
}

type Output struct {
	Text    string
	Actions []contractx.Action
}

// FailureKind classifies a provider failure for the retry driver.
type FailureKind int

const (
	FailureTransient FailureKind = iota
	FailureQuota
)

// RetryPolicy decouples the retry driver from the concrete tiers.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
	Classify    func(error) FailureKind
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 4,
		Backoff:     200 * time.Millisecond,
		Classify: func(err error) FailureKind {
			if credentialx.IsQuotaError(err) {
				return FailureQuota
			}
			return FailureTransient
		},
	}
}

type Generator struct {
	primary   contractx.PrimaryProvider
	secondary contractx.SecondaryProvider
	creds     *credentialx.Manager
	extractor ActionExtractor
	limiter   *rate.Limiter
	policy    RetryPolicy
	timeout   time.Duration
}

type GeneratorOption func(*Generator)

func WithRetryPolicy(p RetryPolicy) GeneratorOption {
	return func(g *Generator) {
		if p.MaxAttempts > 0 && p.Classify != nil {
			g.policy = p
		}
	}
}

func WithTimeout(d time.Duration) GeneratorOption {
	return func(g *Generator) {
		if d > 0 {
			g.timeout = d
		}
	}
}

func WithRateLimit(perSecond float64, burst int) GeneratorOption {
	return func(g *Generator) {
		if perSecond > 0 && burst > 0 {
			g.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
		}
	}
}

// NewGenerator wires the chain. Either provider may be nil; with both nil
// every reply comes from the template tier.
func NewGenerator(primary contractx.PrimaryProvider, secondary contractx.SecondaryProvider, creds *credentialx.Manager, opts ...GeneratorOption) *Generator {
	g := &Generator{
		primary:   primary,
		secondary: secondary,
		creds:     creds,
		extractor: NewActionExtractor(),
		limiter:   rate.NewLimiter(rate.Limit(5), 5),
		policy:    DefaultRetryPolicy(),
		timeout:   30 * time.Second,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate never returns an error: when both upstream tiers fail, the
// deterministic template tier answers.
func (g *Generator) Generate(ctx context.Context, in Input) Output {
	if raw, ok := g.tryPrimary(ctx, in); ok {
		return g.finish(raw)
	}
	if raw, ok := g.trySecondary(ctx, in); ok {
		return g.finish(raw)
	}
	return g.finish(fallbackText(in))
}

func (g *Generator) finish(raw string) Output {
	text, actions := g.extractor.Extract(raw)
	if text == "" {
		text = "Done."
	}
	return Output{Text: text, Actions: actions}
}

// tryPrimary drives the rotating-credential tier: one retry per available
// slot on quota failures, a single extra retry on a transient failure, then
// give up to the next tier. Timeouts count as transient.
func (g *Generator) tryPrimary(ctx context.Context, in Input) (string, bool) {
	if g.primary == nil || g.creds == nil {
		return "", false
	}

	prompt := BuildPrompt(in)
	maxAttempts := g.creds.PoolSize()
	if g.policy.MaxAttempts < maxAttempts {
		maxAttempts = g.policy.MaxAttempts
	}
	transientRetried := false

	for attempt := 0; attempt < maxAttempts; attempt++ {
		secret, slot := g.creds.Active()
		raw, err := g.complete(ctx, func(cctx context.Context) (string, error) {
			return g.primary.Complete(cctx, secret, prompt, in.History)
		})
		if err == nil {
			return raw, true
		}

		kind := g.policy.Classify(err)
		rotated := g.creds.ReportFailure(err)
		log.Warn().
			Err(err).
			Str("session_id", in.SessionID).
			Int("slot", slot).
			Bool("quota", kind == FailureQuota).
			Bool("rotated", rotated).
			Msg("primary provider failed")

		if !rotated {
			log.Warn().
				Err(contractx.ErrProviderExhausted).
				Str("session_id", in.SessionID).
				Msg("primary tier abandoned")
			break
		}
		if kind == FailureTransient {
			if transientRetried {
				break
			}
			transientRetried = true
		}
		if !g.sleep(ctx) {
			break
		}
	}
	return "", false
}

func (g *Generator) trySecondary(ctx context.Context, in Input) (string, bool) {
	if g.secondary == nil {
		return "", false
	}

	prompt := BuildPrompt(in)
	raw, err := g.complete(ctx, func(cctx context.Context) (string, error) {
		return g.secondary.Complete(cctx, prompt, in.History)
	})
	if err != nil {
		log.Warn().Err(err).Str("session_id", in.SessionID).Msg("secondary provider failed")
		return "", false
	}
	return raw, true
}

// complete applies the rate limit and the per-call timeout around one
// provider invocation.
func (g *Generator) complete(ctx context.Context, call func(context.Context) (string, error)) (string, error) {
	cctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	if err := g.limiter.Wait(cctx); err != nil {
		return "", err
	}
	return call(cctx)
}

func (g *Generator) sleep(ctx context.Context) bool {
	if g.policy.Backoff <= 0 {
		return true
	}
	select {
	case <-time.After(g.policy.Backoff):
		return true
	case <-ctx.Done():
		return false
	}
}

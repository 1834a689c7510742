package routing

import (
	"fmt"
	"sync"
	"time"

	"github.com/truai/governor/internal/model"
)

// Provider is one concrete provider/model pair a tier resolves to.
type Provider struct {
	Name  string `yaml:"name" json:"name"`
	Model string `yaml:"model" json:"model"`
}

// DefaultProviders is the static tier→provider table used when the
// host supplies no override.
func DefaultProviders() map[model.Tier]Provider {
	return map[model.Tier]Provider{
		model.TierCheap:   {Name: "ollama", Model: "llama3.1:8b"},
		model.TierMid:     {Name: "openai", Model: "gpt-4o-mini"},
		model.TierCopilot: {Name: "copilot", Model: "gpt-4o"},
	}
}

// Policy resolves tiers to providers and keeps the execution log: a
// read-only audit view of every routing decision, keyed by task order.
type Policy struct {
	mu        sync.Mutex
	providers map[model.Tier]Provider
	execLog   []model.RoutingDecision
}

// NewPolicy creates a Policy with the given tier table. A nil table
// falls back to DefaultProviders.
func NewPolicy(providers map[model.Tier]Provider) *Policy {
	if providers == nil {
		providers = DefaultProviders()
	}
	return &Policy{providers: providers}
}

// Route resolves the task's tier to a concrete provider, mints a fresh
// forensic id, records the decision in the execution log, and returns
// it. Route does not perform the inference call; that is the host's
// collaborator.
func (p *Policy) Route(task *model.Task) (model.RoutingDecision, error) {
	tier := SelectTier(task)

	p.mu.Lock()
	defer p.mu.Unlock()

	provider, ok := p.providers[tier]
	if !ok {
		return model.RoutingDecision{}, fmt.Errorf("routing: no provider configured for tier %q", tier)
	}

	decision := model.RoutingDecision{
		Tier:       tier,
		Provider:   provider.Name,
		Model:      provider.Model,
		ForensicID: MintForensicID(),
		TaskType:   task.Type,
		Target:     task.Target,
		RoutedAt:   time.Now().UTC(),
	}
	p.execLog = append(p.execLog, decision)
	return decision, nil
}

// SetProviders swaps the tier table in place. Used by config
// hot-reload; in-flight decisions keep the table they resolved with.
func (p *Policy) SetProviders(providers map[model.Tier]Provider) {
	if providers == nil {
		return
	}
	p.mu.Lock()
	p.providers = providers
	p.mu.Unlock()
}

// ExecutionLog returns a snapshot copy of all routing decisions in the
// order they were made.
func (p *Policy) ExecutionLog() []model.RoutingDecision {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]model.RoutingDecision, len(p.execLog))
	copy(out, p.execLog)
	return out
}

// Len returns the number of routing decisions made so far.
func (p *Policy) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.execLog)
}

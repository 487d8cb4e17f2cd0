package chat

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Ramsu24/D-Solar-sub001/internal/domain"
	"github.com/Ramsu24/D-Solar-sub001/internal/knowledge"
)

var testFAQs = []domain.FAQ{
	{
		ID:       "installment-plans",
		Question: "Do you offer installment plans?",
		Answer:   "Yes! D-Solar offers flexible installment plans through our financing partners, with terms from 12 to 60 months. [Source: Financing FAQ]",
		Keywords: []string{"installment", "installment plans", "financing", "monthly"},
	},
	{
		ID:       "net-metering",
		Question: "What is net metering?",
		Answer:   "Net metering lets you export excess solar power to the grid and receive credits on your electricity bill.",
		Keywords: []string{"net metering", "export", "meralco"},
	},
	{
		ID:       "ongrid-vs-hybrid",
		Question: "What is the difference between on-grid and hybrid systems?",
		Answer:   "An on-grid system works with the utility grid and has no batteries, while a hybrid system adds batteries so you keep power during outages.",
		Keywords: []string{"on-grid", "hybrid", "battery"},
	},
	{
		ID:       "installation-timeline",
		Question: "How long does installation take?",
		Answer:   "Most residential installations are completed within one to three days after the site inspection and permits.",
		Keywords: []string{"installation", "how long", "timeline"},
	},
	{
		ID:       "warranty",
		Question: "What warranty do your panels have?",
		Answer:   "Our solar panels carry a 25-year performance warranty and inverters carry a 5 to 10 year warranty.",
		Keywords: []string{"warranty", "guarantee"},
	},
}

var testPackages = []domain.Package{
	{Code: "ONG-2K-P1", Name: "2kW On-Grid Starter", Type: domain.PackageTypeOnGrid, Wattage: 2000, SuitableFor: "Monthly bills up to ₱3,000", CashPrice: 104800},
	{Code: "ONG-5K-P2", Name: "5kW On-Grid", Type: domain.PackageTypeOnGrid, Wattage: 5000, SuitableFor: "Monthly bills up to ₱8,000", CashPrice: 218000, SRPPrice: 240000},
	{Code: "HYB-6K10-P4", Name: "6kW Hybrid with 10kWh Battery", Type: domain.PackageTypeHybrid, Wattage: 6000, CashPrice: 420000, FinancingPrice: 465000},
	{Code: "HYB-3PK", Name: "3kW Hybrid Small", Type: domain.PackageTypeHybridSmall, Wattage: 3000, CashPrice: 185500},
}

func newTestBase() *knowledge.MemoryBase {
	return knowledge.NewMemoryBase(&knowledge.Seed{FAQs: testFAQs, Packages: testPackages})
}

// fakeProvider answers each kind of completion call through its own hook.
// A nil hook fails the call.
type fakeProvider struct {
	mu       sync.Mutex
	calls    []string
	lastGen  []domain.ChatTurn
	classify func(message string) (string, error)
	match    func(message string) (string, error)
	generate func(ctx context.Context, turns []domain.ChatTurn) (string, error)
}

func (f *fakeProvider) Complete(ctx context.Context, turns []domain.ChatTurn, opts domain.CompletionOptions) (string, error) {
	system := turns[0].Content
	user := turns[len(turns)-1].Content

	f.mu.Lock()
	switch {
	case strings.HasPrefix(system, "You classify"):
		f.calls = append(f.calls, purposeClassification)
	case strings.HasPrefix(system, "You decide"):
		f.calls = append(f.calls, purposeFAQMatch)
	default:
		f.calls = append(f.calls, purposeGeneration)
		f.lastGen = turns
	}
	purpose := f.calls[len(f.calls)-1]
	f.mu.Unlock()

	switch purpose {
	case purposeClassification:
		if f.classify != nil {
			return f.classify(user)
		}
	case purposeFAQMatch:
		if f.match != nil {
			return f.match(user)
		}
	default:
		if f.generate != nil {
			return f.generate(ctx, turns)
		}
	}
	return "", errors.New("unexpected completion call: " + purpose)
}

func (f *fakeProvider) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeProvider) LastGeneration() []domain.ChatTurn {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastGen
}

type failingBase struct{ domain.KnowledgeBase }

func (failingBase) ListFAQs(ctx context.Context) ([]domain.FAQ, error) {
	return nil, domain.StorageError("list faqs", errors.New("connection refused"))
}

func (failingBase) ListPackages(ctx context.Context) ([]domain.Package, error) {
	return nil, domain.StorageError("list packages", errors.New("connection refused"))
}

func (failingBase) FindPackageByCode(ctx context.Context, code string) (*domain.Package, error) {
	return nil, domain.ErrNotFound
}

func (failingBase) FindPackageByCodeSuffix(ctx context.Context, suffix string) (*domain.Package, error) {
	return nil, domain.ErrNotFound
}

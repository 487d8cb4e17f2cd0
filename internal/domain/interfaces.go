package domain

import "context"

// KnowledgeBase provides read access to FAQs and packages.
type KnowledgeBase interface {
	// ListFAQs returns every FAQ in stable order.
	ListFAQs(ctx context.Context) ([]FAQ, error)

	// ListPackages returns every package in stable order.
	ListPackages(ctx context.Context) ([]Package, error)

	// FindPackageByCode returns the package with exactly this code or ErrNotFound.
	FindPackageByCode(ctx context.Context, code string) (*Package, error)

	// FindPackageByCodeSuffix returns the first package whose code ends with suffix or ErrNotFound.
	FindPackageByCodeSuffix(ctx context.Context, suffix string) (*Package, error)
}

// CompletionProvider sends a conversation to a language model and returns its text.
type CompletionProvider interface {
	Complete(ctx context.Context, messages []ChatTurn, opts CompletionOptions) (string, error)
}

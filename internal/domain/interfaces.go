package domain

import "context"

// Requester issues one logical HTTP call against the URL list API and
// returns the response body of a 2xx reply. Retries are its own concern.
type Requester interface {
	Request(ctx context.Context, method, path string, body any) ([]byte, error)
}

// ListSummary is one entry of the "list all" response.
type ListSummary struct {
	ID   string
	Name string
}

// URLListAPI is how we talk to the remote policy service.
type URLListAPI interface {
	ListAll(ctx context.Context) ([]ListSummary, error)
	Create(ctx context.Context, name string, urls []string) (ListHandle, error)
	Replace(ctx context.Context, h ListHandle, urls []string) error
	Append(ctx context.Context, h ListHandle, urls []string) error
	// Count returns the entry count; ok is false when the body was malformed.
	Count(ctx context.Context, h ListHandle) (n int, ok bool, err error)
	Deploy(ctx context.Context) error
}

// Resolver finds, creates and counts the target list.
type Resolver interface {
	Find(ctx context.Context, name string) (ListHandle, bool, error)
	Create(ctx context.Context, name string, first Chunk) (ListHandle, error)
	Count(ctx context.Context, h ListHandle) (int, error)
	Available(ctx context.Context) ([]string, error)
}

// Source loads a domain source and returns its valid, normalized entries
// in source order, duplicates included.
type Source interface {
	Load(ctx context.Context, source string) ([]string, error)
}

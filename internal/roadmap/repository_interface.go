package roadmap

import "context"

type Repository interface {
	// ListTitles returns the user's titles in insertion order; an unknown
	// email yields an empty list.
	ListTitles(ctx context.Context, email string) ([]string, error)
	// Save replaces the nodes and edges of an existing title or appends a
	// new roadmap. created reports which happened.
	Save(ctx context.Context, r *Roadmap) (created bool, err error)
	Get(ctx context.Context, email, title string) (*Roadmap, error)
}

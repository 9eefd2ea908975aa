package domain

import "context"

type Service interface {
	// Issue runs the tax engine, assigns the authoritative invoice number
	// and persists the result together with its decision trace.
	Issue(ctx context.Context, req IssueRequest) (*IssueResponse, error)
	// Document renders the stored invoice as a PDF byte stream.
	Document(ctx context.Context, id string) ([]byte, error)
	GetByID(ctx context.Context, id string) (*Invoice, error)
}

package usecase

import "context"

// Operation is one named request in a query batch. Args are decoded into
// the operation's typed input by the router.
type Operation struct {
	Name string         `json:"operation" validate:"required"`
	Args map[string]any `json:"args"`
}

// OperationResult holds the outcome of one operation. Exactly one of Data
// and Err is meaningful; a nil Data with a nil Err is a valid empty result.
type OperationResult struct {
	Data any
	Err  error
}

// QueryUsecase dispatches batches of named operations to their resolvers.
type QueryUsecase interface {
	// Execute runs every operation concurrently and returns one result per
	// operation name. A failed operation never affects its siblings.
	Execute(ctx context.Context, ops []Operation) map[string]OperationResult
}

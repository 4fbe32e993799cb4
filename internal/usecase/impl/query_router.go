package impl

import (
	"context"
	"log/slog"
	"sync"

	deliverycontext "booktrader/internal/delivery/context"
	domainerrors "booktrader/internal/domain/errors"
	"booktrader/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
)

// resolverFunc executes one named operation against its untyped args.
type resolverFunc func(ctx context.Context, args map[string]any) (any, error)

// queryRouter implements the QueryUsecase interface. The operation table is
// fixed at construction; there is no dynamic registration.
type queryRouter struct {
	resolvers map[string]resolverFunc
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewQueryRouter is the constructor for queryRouter. It binds every
// operation name the delivery layer may dispatch to its resolver.
func NewQueryRouter(
	session usecase.SessionUsecase,
	catalog usecase.CatalogUsecase,
	trade usecase.TradeUsecase,
	logger *slog.Logger,
) usecase.QueryUsecase {
	router := &queryRouter{
		validate: validator.New(),
		logger:   logger,
	}

	router.resolvers = map[string]resolverFunc{
		"localUser": func(ctx context.Context, _ map[string]any) (any, error) {
			return session.LocalUser(ctx), nil
		},
		"getBooks": func(ctx context.Context, _ map[string]any) (any, error) {
			return trade.GetBooks(ctx)
		},
		"searchCatalog": func(ctx context.Context, args map[string]any) (any, error) {
			input, err := decodeArgs[usecase.SearchCatalogInput](router, args)
			if err != nil {
				return nil, err
			}

			return catalog.Search(ctx, input)
		},
		"viewCatalog": func(ctx context.Context, args map[string]any) (any, error) {
			input, err := decodeArgs[usecase.ViewCatalogInput](router, args)
			if err != nil {
				return nil, err
			}

			return catalog.View(ctx, input)
		},
		"updateLocalUser": func(ctx context.Context, args map[string]any) (any, error) {
			input, err := decodeArgs[usecase.UpdateLocalUserInput](router, args)
			if err != nil {
				return nil, err
			}

			return nil, session.UpdateLocalUser(ctx, input)
		},
		"signup": func(ctx context.Context, args map[string]any) (any, error) {
			input, err := decodeArgs[usecase.SignupInput](router, args)
			if err != nil {
				return nil, err
			}

			return session.Signup(ctx, input)
		},
		"login": func(ctx context.Context, args map[string]any) (any, error) {
			input, err := decodeArgs[usecase.LoginInput](router, args)
			if err != nil {
				return nil, err
			}

			return session.Login(ctx, input)
		},
		"logout": func(ctx context.Context, _ map[string]any) (any, error) {
			return nil, session.UpdateLocalUser(ctx, usecase.UpdateLocalUserInput{Logout: true})
		},
		"addBook": func(ctx context.Context, args map[string]any) (any, error) {
			input, err := decodeArgs[usecase.AddBookInput](router, args)
			if err != nil {
				return nil, err
			}

			return trade.AddBook(ctx, input)
		},
		"updateDetail": func(ctx context.Context, args map[string]any) (any, error) {
			input, err := decodeArgs[usecase.UpdateDetailInput](router, args)
			if err != nil {
				return nil, err
			}

			return nil, session.UpdateDetail(ctx, input)
		},
	}

	return router
}

func (r *queryRouter) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, r.logger)
}

// Execute fans the batch out, one goroutine per operation, and collects one
// result per operation name. Errors stay confined to their own slot; an
// unknown name resolves to ErrUnknownOperation without touching siblings.
func (r *queryRouter) Execute(ctx context.Context, ops []usecase.Operation) map[string]usecase.OperationResult {
	results := make(map[string]usecase.OperationResult, len(ops))

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, op := range ops {
		resolver, ok := r.resolvers[op.Name]
		if !ok {
			r.log(ctx).Warn("unknown operation requested", slog.String("operation", op.Name))
			mu.Lock()
			results[op.Name] = usecase.OperationResult{
				Err: errors.Wrapf(domainerrors.ErrUnknownOperation, "unknown operation %q", op.Name),
			}
			mu.Unlock()

			continue
		}

		wg.Add(1)
		go func(op usecase.Operation) {
			defer wg.Done()

			data, err := resolver(ctx, op.Args)
			if err != nil {
				r.log(ctx).Warn("operation failed",
					slog.String("operation", op.Name),
					slog.Any("error", err),
				)
			}

			mu.Lock()
			results[op.Name] = usecase.OperationResult{Data: data, Err: err}
			mu.Unlock()
		}(op)
	}
	wg.Wait()

	return results
}

// decodeArgs shapes untyped operation args into the resolver's input type
// and validates it. Both failure modes surface as ErrValidationFailed.
func decodeArgs[T any](r *queryRouter, args map[string]any) (T, error) {
	var input T
	if err := mapstructure.Decode(args, &input); err != nil {
		return input, errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
	}
	if err := r.validate.Struct(&input); err != nil {
		return input, errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
	}

	return input, nil
}

package annotate

import (
	"context"

	"github.com/mmechtley/hstfocus/internal/common/logger"
	"github.com/mmechtley/hstfocus/internal/focus/query"
)

// Header is the caller-owned image metadata store. The annotator reads the
// observation date and time cards and writes exactly one card, the mean
// focus; everything else in the header is left alone.
type Header interface {
	// Name identifies the target in logs and errors, e.g. a file path.
	Name() string
	// ReadCard returns the string form of the named card's value.
	ReadCard(name string) (string, error)
	// WriteCard sets the named card, overwriting any prior value.
	WriteCard(name string, value float64, comment string) error
}

// Fetcher obtains model data for a derived query window. Implemented by
// query.Service.
type Fetcher interface {
	GetModelData(ctx context.Context, params query.Params) (*query.Result, error)
}

type ServiceDependencies struct {
	Logger  logger.Logger
	Fetcher Fetcher
}

package output

import (
	"context"

	"github.com/crimson-sun/taxreport/internal/model"
)

// Output defines the interface for report destinations.
type Output interface {
	Write(ctx context.Context, rep *model.Report) error
	Close() error
}

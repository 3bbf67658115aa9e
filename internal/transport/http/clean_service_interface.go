package http

import (
	"context"

	"github.com/404Health/universal-dataCleaner/internal/cleaning"
	"github.com/404Health/universal-dataCleaner/internal/services"
)

// CleanServiceInterface is the service surface the clean handler depends
// on, kept narrow so tests can substitute a mock.
type CleanServiceInterface interface {
	DefaultOptions() cleaning.Options
	CleanFile(ctx context.Context, name string, data []byte, opts cleaning.Options) (*services.Run, error)
	Run(id string) (*services.Run, bool)
	ExportCSV(run *services.Run) ([]byte, error)
	ExportXLSX(run *services.Run) ([]byte, error)
}

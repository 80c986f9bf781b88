package rehearse

import (
	"log/slog"

	"github.com/aretw0/rehearse/internal/logging"
	"github.com/aretw0/rehearse/pkg/domain"
	"github.com/aretw0/rehearse/pkg/extract"
)

// Version is set at build time with -ldflags "-X github.com/aretw0/rehearse.Version=...".
var Version = "dev"

// Open reads the deck at path and extracts its actions.
// A nil logger discards extraction warnings.
func Open(path string, logger *slog.Logger) (*domain.Document, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	return extract.New(extract.WithLogger(logger)).ExtractFile(path)
}

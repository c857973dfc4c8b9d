package progress

import (
	"github.com/trebuchet-org/eventcreator-deploy/internal/domain/config"
	"github.com/trebuchet-org/eventcreator-deploy/internal/usecase"
)

// NewProgressSink picks the spinner for terminals and the no-op sink for
// JSON or non-interactive output
func NewProgressSink(cfg *config.RuntimeConfig) usecase.ProgressSink {
	if cfg.JSON || cfg.NonInteractive {
		return NewNopSink()
	}
	return NewSpinnerProgressReporter()
}

package service

import (
	"github.com/okian/rrdash/internal/adapters/render"
	repository "github.com/okian/rrdash/internal/adapters/repository"
	"github.com/okian/rrdash/internal/config"
	"github.com/okian/rrdash/internal/domain/view"
)

// OptionsFromConfig maps a loaded Config onto Service options.
func OptionsFromConfig(cfg *config.Config) []Option {
	return []Option{
		WithDataPath(cfg.DataPath),
		WithLoadOptions(
			repository.WithDelimiter(cfg.Delimiter()),
			repository.WithTable(cfg.DataTable),
			repository.WithDateLayouts(cfg.DateLayouts...),
		),
		WithViewOptions(
			view.WithTopCompanies(cfg.TopCompanies),
			view.WithTopReceivers(cfg.TopReceivers),
			view.WithInsightLimit(cfg.InsightLimit),
			view.WithAwardFeedType(cfg.AwardFeedType),
			view.WithDateLayout(cfg.DateLayouts...),
		),
		WithRenderOptions(render.WithSize(cfg.ChartWidth, cfg.ChartHeight)),
	}
}

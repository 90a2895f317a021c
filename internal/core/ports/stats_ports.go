package ports

import (
	"context"
)

type StatsService interface {
	SummarizeAll(ctx context.Context) error
}

package invoice

import (
	"github.com/fakturio/fakturio/internal/invoice/domain"
	"github.com/fakturio/fakturio/internal/invoice/number"
	"github.com/fakturio/fakturio/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice",
	fx.Provide(
		fx.Annotate(number.NewAllocator, fx.As(new(domain.NumberAllocator))),
		service.NewService,
	),
)

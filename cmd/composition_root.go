package cmd

import (
	"log/slog"

	"orderflow/internal/adapters/out/notify"
	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/ports"

	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	var notifier ports.Notifier = notify.NewNoopNotifier()
	if configs.NotifyWebhookURL != "" {
		webhook, err := notify.NewWebhookNotifier(configs.NotifyWebhookURL)
		if err != nil {
			log.Fatalf("invalid notification webhook URL: %v", err)
		}
		notifier = webhook
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:   notifier,
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory(), c.notifier, c.logger)
}

func (c *CompositionRoot) CreateUpdateShippingCommandHandler() commands.UpdateShippingCommandHandler {
	return commands.NewUpdateShippingCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpdatePaymentCommandHandler() commands.UpdatePaymentCommandHandler {
	return commands.NewUpdatePaymentCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAddOrderNoteCommandHandler() commands.AddOrderNoteCommandHandler {
	return commands.NewAddOrderNoteCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateExpireStaleOrdersCommandHandler() commands.ExpireStaleOrdersCommandHandler {
	return commands.NewExpireStaleOrdersCommandHandler(c.orderUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	handler, err := queries.NewGetOrderQueryHandler(c.gormDB)
	if err != nil {
		log.Fatalf("failed to create get order query handler: %v", err)
	}
	return handler
}

func (c *CompositionRoot) CreateGetStatusHistoryQueryHandler() queries.GetStatusHistoryQueryHandler {
	handler, err := queries.NewGetStatusHistoryQueryHandler(c.gormDB)
	if err != nil {
		log.Fatalf("failed to create status history query handler: %v", err)
	}
	return handler
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

package domain

import (
	"github.com/storytimehq/storytime-api/config"
	"github.com/storytimehq/storytime-api/domain/contact"
	"github.com/storytimehq/storytime-api/domain/monitoring"
	"github.com/storytimehq/storytime-api/domain/waitlist"
)

func SetupCoreDomain(appConfig *config.ApplicationConfig) {
	appConfig.RouterService.MountController(monitoring.NewMonitoringController(appConfig.DB, appConfig.Logger, appConfig.Cache, appConfig.Mailer))
	appConfig.RouterService.MountController(waitlist.NewWaitlistController(appConfig.DB, appConfig.Logger, appConfig.Mailer))
	appConfig.RouterService.MountController(contact.NewContactController(appConfig.Logger, appConfig.Mailer))
}

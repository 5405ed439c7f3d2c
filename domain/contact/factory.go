package contact

import (
	"github.com/storytimehq/storytime-api/config/router"
	"github.com/storytimehq/storytime-api/internal/log"
	"github.com/storytimehq/storytime-api/internal/mailer"
)

type ContactServiceFactory interface {
	CreateService() ContactService
	CreateController() *router.RESTController
}

type DefaultContactServiceFactory struct {
	logger *log.Logger
	mailer mailer.Mailer
}

func NewContactServiceFactory(logger *log.Logger, mailService mailer.Mailer) ContactServiceFactory {
	return &DefaultContactServiceFactory{
		logger: logger,
		mailer: mailService,
	}
}

func (f *DefaultContactServiceFactory) CreateService() ContactService {
	return NewContactService(f.logger, f.mailer)
}

func (f *DefaultContactServiceFactory) CreateController() *router.RESTController {
	return NewContactController(f.logger, f.mailer)
}

package handlers

import (
	"github.com/kwadwoankamah/duesflow/factory"
	"github.com/kwadwoankamah/duesflow/internal/config"
)

type Handlers struct {
	factory *factory.Factory
	config  *config.Config
}

func NewHandlers(factory *factory.Factory, config *config.Config) *Handlers {
	return &Handlers{
		factory: factory,
		config:  config,
	}
}

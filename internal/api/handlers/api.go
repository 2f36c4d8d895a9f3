package handlers

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/kenyagreatparty/kgp-backend/factory"
	"github.com/kenyagreatparty/kgp-backend/internal/config"
)

type Handlers struct {
	factory *factory.Factory
	config  *config.Config

	validate *validator.Validate
	trans    ut.Translator
}

func NewHandlers(factory *factory.Factory, config *config.Config, validate *validator.Validate, trans ut.Translator) *Handlers {
	return &Handlers{
		factory:  factory,
		config:   config,
		validate: validate,
		trans:    trans,
	}

}

package factory

import (
	"context"
	"fmt"

	"github.com/go-chi/chi/v5"
	"github.com/robfig/cron/v3"

	"github.com/kwadwoankamah/duesflow/internal/config"
	"github.com/kwadwoankamah/duesflow/internal/middleware"
	"github.com/kwadwoankamah/duesflow/internal/repository"
	"github.com/kwadwoankamah/duesflow/internal/services/members"
	"github.com/kwadwoankamah/duesflow/internal/services/payments"
	"github.com/kwadwoankamah/duesflow/internal/services/users"
	"github.com/kwadwoankamah/duesflow/internal/validation"
	"github.com/kwadwoankamah/duesflow/pkg/imagestore"
	"github.com/kwadwoankamah/duesflow/pkg/logger"
	"github.com/kwadwoankamah/duesflow/pkg/momo"
	"github.com/kwadwoankamah/duesflow/pkg/token"
)

type Repositories struct {
	Member *repository.MemberRepository
	User   *repository.UserRepository
}

type Services struct {
	Member   *members.Member
	Payments *payments.Recorder
	User     *users.User
}

type Factory struct {
	Logger       *logger.Logger
	Validator    *validation.Validator
	Images       *imagestore.Store
	Gateway      momo.Gateway
	JWTToken     *token.Jwt
	Router       *chi.Mux
	Cron         *cron.Cron
	Services     *Services
	Repositories *Repositories
	Middleware   *middleware.Middleware
}

func New(cfg *config.Config) (*Factory, func(), error) {
	log := logger.New(cfg)

	validator, err := validation.New()
	if err != nil {
		return nil, nil, fmt.Errorf("init validator: %w", err)
	}

	jwtToken := token.NewJwt(cfg.Auth.JWTSecret)
	images := imagestore.New()
	gateway := momo.NewSimulatedGateway(cfg.Gateway.Delay)

	memberRepo := repository.NewMemberRepository()
	userRepo := repository.NewUserRepository()

	if err := repository.Seed(context.Background(), memberRepo, userRepo); err != nil {
		return nil, nil, fmt.Errorf("seed stores: %w", err)
	}

	membersService := members.New(cfg, memberRepo, validator, images, log)
	paymentsService := payments.New(cfg, gateway, memberRepo, validator, log)
	usersService := users.New(cfg, jwtToken, userRepo)

	mw := middleware.New(jwtToken, log)

	// Dues are monthly-recurring: every member flips back to unpaid when a
	// new billing period opens.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Dues.RolloverSpec, func() {
		if err := membersService.ResetDues(context.Background()); err != nil {
			log.Error().Err(err).Msg("dues_rollover_failed")
		}
	}); err != nil {
		return nil, nil, fmt.Errorf("schedule dues rollover: %w", err)
	}
	scheduler.Start()

	return &Factory{
			Logger:    log,
			Validator: validator,
			Images:    images,
			Gateway:   gateway,
			JWTToken:  jwtToken,
			Router:    chi.NewRouter(),
			Cron:      scheduler,
			Services: &Services{
				Member:   membersService,
				Payments: paymentsService,
				User:     usersService,
			},
			Repositories: &Repositories{
				Member: memberRepo,
				User:   userRepo,
			},
			Middleware: mw,
		}, func() {
			scheduler.Stop()
		}, nil
}

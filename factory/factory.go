package factory

import (
	"github.com/go-chi/chi/v5"

	"github.com/kenyagreatparty/kgp-backend/internal/config"
	"github.com/kenyagreatparty/kgp-backend/internal/middleware"
	"github.com/kenyagreatparty/kgp-backend/internal/repository"
	"github.com/kenyagreatparty/kgp-backend/internal/services/memberships"
	"github.com/kenyagreatparty/kgp-backend/pkg/cache"
	"github.com/kenyagreatparty/kgp-backend/pkg/database"
	emailpkg "github.com/kenyagreatparty/kgp-backend/pkg/email"
	"github.com/kenyagreatparty/kgp-backend/pkg/logger"
	"github.com/kenyagreatparty/kgp-backend/pkg/token"
)

type Repositories struct {
	Membership  *repository.MembershipRepository
	Sequence    *repository.SequenceRepository
	Renewal     *repository.RenewalRepository
	Resignation *repository.ResignationRepository
}

type Services struct {
	Membership *memberships.Membership
}

type Factory struct {
	DB           *database.PostgresDB
	Cache        *cache.Redis
	JWTToken     *token.Jwt
	Email        *emailpkg.Email
	Logger       *logger.Logger
	Router       *chi.Mux
	Services     *Services
	Repositories *Repositories
	Middleware   *middleware.Middleware
}

func New(cfg *config.Config) (*Factory, func(), error) {
	log := logger.New(cfg)

	db, dbCleanup, err := database.New(cfg.Database.URL)
	if err != nil {
		return nil, nil, err
	}

	redisCache, cacheCleanup := cache.New(cfg, log)

	jwtToken := token.NewJwt(cfg.Auth.JWTSecret)

	email, err := emailpkg.New(cfg)
	if err != nil {
		dbCleanup()
		cacheCleanup()
		return nil, nil, err
	}

	membershipRepo := repository.NewMembershipRepository(db.DB)
	sequenceRepo := repository.NewSequenceRepository(db.DB)
	renewalRepo := repository.NewRenewalRepository(db.DB)
	resignationRepo := repository.NewResignationRepository(db.DB)

	membershipService := memberships.New(
		db.DB,
		cfg,
		log,
		membershipRepo,
		sequenceRepo,
		renewalRepo,
		resignationRepo,
		email,
		redisCache,
	)

	mw := middleware.New(jwtToken, log)

	return &Factory{
			DB:       db,
			Cache:    redisCache,
			JWTToken: jwtToken,
			Email:    email,
			Logger:   log,
			Router:   chi.NewRouter(),
			Services: &Services{
				Membership: membershipService,
			},
			Repositories: &Repositories{
				Membership:  membershipRepo,
				Sequence:    sequenceRepo,
				Renewal:     renewalRepo,
				Resignation: resignationRepo,
			},
			Middleware: mw,
		}, func() {
			cacheCleanup()
			dbCleanup()
		}, nil
}

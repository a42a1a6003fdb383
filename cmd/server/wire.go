// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"fixitnow_backend/internal/admin"
	"fixitnow_backend/internal/app"
	"fixitnow_backend/internal/auth"
	"fixitnow_backend/internal/booking"
	"fixitnow_backend/internal/config"
	"fixitnow_backend/internal/jobs"
	"fixitnow_backend/internal/platform/database"
	"fixitnow_backend/internal/platform/logger"
	"fixitnow_backend/internal/provider"
	"fixitnow_backend/internal/review"
	"fixitnow_backend/internal/shared"
	"fixitnow_backend/internal/user"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		database.NewGORM,
		provideCleanup,

		// Tokens
		auth.NewJWTService,
		wire.Bind(new(shared.TokenService), new(*auth.JWTService)),

		// Identity
		user.NewGORMRepository,
		user.NewService,
		wire.Bind(new(user.Service), new(*user.ServiceImplementation)),
		wire.Bind(new(shared.UserResolver), new(*user.ServiceImplementation)),
		user.NewHandler,

		// Registration and login
		auth.NewService,
		wire.Bind(new(auth.Service), new(*auth.ServiceImplementation)),
		auth.NewHandler,

		// Provider directory
		provider.NewRepository,
		provider.NewService,
		wire.Bind(new(provider.Service), new(*provider.ServiceImplementation)),
		provider.NewHandler,

		// Booking lifecycle
		booking.NewRepository,
		booking.NewService,
		wire.Bind(new(booking.Service), new(*booking.ServiceImplementation)),
		wire.Bind(new(shared.BookingCounter), new(*booking.ServiceImplementation)),
		booking.NewHandler,

		// Reviews and ratings
		review.NewRepository,
		review.NewService,
		wire.Bind(new(review.Service), new(*review.ServiceImplementation)),
		wire.Bind(new(shared.ReviewFeed), new(*review.ServiceImplementation)),
		review.NewHandler,

		// Admin dashboard
		admin.NewService,
		wire.Bind(new(admin.Service), new(*admin.ServiceImplementation)),
		admin.NewHandler,

		// Jobs
		jobs.NewRatingResyncJob,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}

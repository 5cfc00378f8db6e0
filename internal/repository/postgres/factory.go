package postgres

import (
	repo "github.com/smartewaste/ewaste-backend/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	Users    repo.Users
	Profiles repo.Profiles
	Requests repo.Requests
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:    &usersRepo{pool},
		Profiles: &profilesRepo{pool},
		Requests: &requestsRepo{pool},
	}
}

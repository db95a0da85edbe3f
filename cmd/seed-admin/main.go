// Command seed-admin creates the back-office admin account, or resets its password
// when the email already exists. Credentials come from the environment.
package main

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/storedesk/backoffice-api/internal/config"
	"github.com/storedesk/backoffice-api/internal/models"
	repository "github.com/storedesk/backoffice-api/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

type seedAdmin struct {
	Email    string `env:"ADMIN_EMAIL" env-required:"true"`
	Password string `env:"ADMIN_PASSWORD" env-required:"true"`
	Name     string `env:"ADMIN_NAME" env-default:"Administrator"`
}

func main() {

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.MustLoad()

	var seed seedAdmin
	if err := cleanenv.ReadEnv(&seed); err != nil {
		slog.Error("Missing admin credentials", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := repository.OpenDB(ctx, &cfg.Database)
	if err != nil {
		slog.Error("Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	if err := repository.RunMigrations(db); err != nil {
		slog.Error("Error migrating the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("Error hashing password", slog.String("error", err.Error()))
		os.Exit(1)
	}

	admin := &models.Admin{
		Email:        strings.ToLower(strings.TrimSpace(seed.Email)),
		Name:         seed.Name,
		PasswordHash: string(hash),
	}

	if err := repository.NewAdminRepo(db).UpsertAdmin(ctx, admin); err != nil {
		slog.Error("Error saving admin", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("Admin ready", slog.String("id", admin.ID.String()), slog.String("email", admin.Email))
}

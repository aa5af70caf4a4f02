package main

import (
	"context"
	"flag"
	"log"
	"time"

	"rentdesk/internal/config"
	"rentdesk/internal/domain"
	"rentdesk/internal/repository/postgres"
	"rentdesk/internal/service"
)

// Provisions the first super admin so the API has someone who can log in
// and create the rest.
func main() {
	var (
		name     = flag.String("name", "Super Admin", "display name")
		email    = flag.String("email", "", "login email (required)")
		password = flag.String("password", "", "login password (required)")
	)
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("usage: seed -email admin@example.com -password secret [-name \"Super Admin\"]")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	adminSvc := service.NewAdminService(postgres.NewAdminRepo(db))
	admin, err := adminSvc.Create(ctx, service.CreateAdminInput{
		Name:     *name,
		Email:    *email,
		Password: *password,
		Role:     domain.RoleSuperAdmin,
	})
	if err != nil {
		log.Fatalf("failed to create super admin: %v", err)
	}

	log.Printf("super admin created: %s (%s)", admin.Email, admin.ID)
}

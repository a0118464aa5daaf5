package main

import (
	"context"
	"flag"
	"log"

	"github.com/plateful/recipe-api/config"
	"github.com/plateful/recipe-api/internal/database"
	"github.com/plateful/recipe-api/internal/service"
	"github.com/plateful/recipe-api/internal/types"
)

// createadmin provisions a staff + superuser account for operating the API.
func main() {
	email := flag.String("email", "", "admin email address")
	password := flag.String("password", "", "admin password")
	name := flag.String("name", "Admin", "display name")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	authService := service.NewAuthService(db)

	user, err := authService.Register(ctx, &types.CreateUserRequest{
		Email:    *email,
		Password: *password,
		Name:     *name,
	})
	if err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	if err := db.Model(user).Updates(map[string]interface{}{
		"is_staff":     true,
		"is_superuser": true,
	}).Error; err != nil {
		log.Fatalf("Failed to grant admin flags: %v", err)
	}

	log.Printf("Admin user %s created", user.Email)
}

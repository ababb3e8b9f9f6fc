package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/qrmenu-api/internal/domain/entity"
	"github.com/jhoicas/qrmenu-api/internal/infrastructure/postgres"
	slugpkg "github.com/jhoicas/qrmenu-api/pkg/slug"
)

// seedFile estructura del YAML de datos iniciales.
type seedFile struct {
	Venue struct {
		Name         string `yaml:"name"`
		Slug         string `yaml:"slug"`
		Announcement string `yaml:"announcement"`
		OpeningHours string `yaml:"opening_hours"`
	} `yaml:"venue"`
	Users []struct {
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
		Role     string `yaml:"role"`
	} `yaml:"users"`
	Categories []struct {
		Name          string `yaml:"name"`
		Slug          string `yaml:"slug"`
		DisplayOrder  int    `yaml:"display_order"`
		ImageURL      string `yaml:"image_url"`
		SubCategories []struct {
			Name         string `yaml:"name"`
			Slug         string `yaml:"slug"`
			DisplayOrder int    `yaml:"display_order"`
		} `yaml:"subcategories"`
	} `yaml:"categories"`
	Products []struct {
		Name        string   `yaml:"name"`
		Description string   `yaml:"description"`
		PriceCents  int64    `yaml:"price_cents"`
		Category    string   `yaml:"category"`     // slug de categoría
		SubCategory string   `yaml:"sub_category"` // slug de subcategoría
		ImageURL    string   `yaml:"image_url"`
		DietTags    []string `yaml:"diet_tags"`
	} `yaml:"products"`
}

func newLoadCmd() *cobra.Command {
	var file string
	var databaseURL string

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Inserta el contenido del archivo YAML en orden de dependencias",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(cmd.Context(), file, databaseURL)
		},
	}
	cmd.Flags().StringVar(&file, "file", "seed.yaml", "archivo YAML con los datos")
	cmd.Flags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "connection string de PostgreSQL")
	return cmd
}

func runLoad(ctx context.Context, file, databaseURL string) error {
	if databaseURL == "" {
		return fmt.Errorf("falta --database-url o DATABASE_URL")
	}
	raw, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("leer %s: %w", file, err)
	}
	var seed seedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("parsear %s: %w", file, err)
	}
	if seed.Venue.Name == "" {
		return fmt.Errorf("el seed necesita al menos venue.name")
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("conectar a PostgreSQL: %w", err)
	}
	defer pool.Close()

	venues := postgres.NewVenueRepository(pool)
	categories := postgres.NewCategoryRepository(pool)
	subCategories := postgres.NewSubCategoryRepository(pool)
	products := postgres.NewProductRepository(pool)
	users := postgres.NewUserRepository(pool)

	now := time.Now()

	// Venue primero: todo lo demás cuelga de él.
	venueSlug := seed.Venue.Slug
	if venueSlug == "" {
		venueSlug = slugpkg.Make(seed.Venue.Name)
	}
	venue, err := venues.GetBySlug(venueSlug)
	if err != nil {
		return err
	}
	if venue == nil {
		venue = &entity.Venue{
			ID:           uuid.New().String(),
			Name:         seed.Venue.Name,
			Slug:         venueSlug,
			Announcement: seed.Venue.Announcement,
			OpeningHours: seed.Venue.OpeningHours,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := venues.Create(venue); err != nil {
			return fmt.Errorf("crear venue: %w", err)
		}
		fmt.Printf("venue %q creado\n", venue.Slug)
	} else {
		fmt.Printf("venue %q ya existe, reutilizando\n", venue.Slug)
	}

	for _, u := range seed.Users {
		existing, err := users.FindByEmail(u.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		role := u.Role
		if role == "" {
			role = entity.RoleViewer
		}
		if err := users.Create(&entity.User{
			ID:           uuid.New().String(),
			Email:        u.Email,
			PasswordHash: string(hash),
			Role:         role,
			CreatedAt:    now,
			UpdatedAt:    now,
		}); err != nil {
			return fmt.Errorf("crear usuario %s: %w", u.Email, err)
		}
		fmt.Printf("usuario %s creado\n", u.Email)
	}

	catIDBySlug := map[string]string{}
	subIDBySlug := map[string]string{}

	for _, c := range seed.Categories {
		catSlug := c.Slug
		if catSlug == "" {
			catSlug = slugpkg.Make(c.Name)
		}
		cat := &entity.Category{
			ID:           uuid.New().String(),
			VenueID:      venue.ID,
			Slug:         catSlug,
			Name:         c.Name,
			DisplayOrder: c.DisplayOrder,
			IsVisible:    true,
			ImageURL:     c.ImageURL,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := categories.Create(cat); err != nil {
			return fmt.Errorf("crear categoría %s: %w", c.Name, err)
		}
		catIDBySlug[catSlug] = cat.ID

		for _, s := range c.SubCategories {
			subSlug := s.Slug
			if subSlug == "" {
				subSlug = slugpkg.Make(s.Name)
			}
			sub := &entity.SubCategory{
				ID:           uuid.New().String(),
				VenueID:      venue.ID,
				CategoryID:   cat.ID,
				Slug:         subSlug,
				Name:         s.Name,
				DisplayOrder: s.DisplayOrder,
				IsVisible:    true,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := subCategories.Create(sub); err != nil {
				return fmt.Errorf("crear subcategoría %s: %w", s.Name, err)
			}
			subIDBySlug[subSlug] = sub.ID
		}
	}
	fmt.Printf("%d categorías cargadas\n", len(catIDBySlug))

	count := 0
	for _, p := range seed.Products {
		product := &entity.Product{
			ID:          uuid.New().String(),
			VenueID:     venue.ID,
			Name:        p.Name,
			Slug:        slugpkg.Make(p.Name),
			Category:    p.Category,
			Description: p.Description,
			PriceCents:  p.PriceCents,
			ImageURL:    p.ImageURL,
			IsActive:    true,
			IsInStock:   true,
			DietTags:    p.DietTags,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if id, ok := catIDBySlug[p.Category]; ok {
			product.CategoryID = &id
		}
		if id, ok := subIDBySlug[p.SubCategory]; ok {
			product.SubCategoryID = &id
		}
		if err := products.Create(product); err != nil {
			return fmt.Errorf("crear producto %s: %w", p.Name, err)
		}
		count++
	}
	fmt.Printf("%d productos cargados\n", count)
	return nil
}

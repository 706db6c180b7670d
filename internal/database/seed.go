// This file seeds initial data on a fresh database: the admin account,
// starter resume sections, and default blog categories.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"myblog/backend/internal/plugins/auth"
	"myblog/backend/internal/plugins/blog"
	"myblog/backend/internal/plugins/resume"
)

// Default admin credentials for a fresh install. Change the password after
// first login.
const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
	defaultAdminEmail    = "admin@example.com"
)

// Seed populates a fresh database with the default admin account, starter
// resume sections, and the default blog categories. Each group is only
// written when its table is empty, so Seed is safe to run on every startup.
func Seed(ctx context.Context, db *sql.DB) error {
	if err := seedAdmin(ctx, db); err != nil {
		return err
	}
	if err := seedResume(ctx, db); err != nil {
		return err
	}
	return seedCategories(ctx, db)
}

func seedAdmin(ctx context.Context, db *sql.DB) error {
	users := auth.NewUserRepository(db)

	count, err := users.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	admin := &auth.User{
		Username:     defaultAdminUsername,
		Email:        defaultAdminEmail,
		FullName:     "Administrator",
		PasswordHash: hash,
		Role:         auth.RoleAdmin,
		IsActive:     true,
	}
	if err := users.Create(ctx, admin); err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("default admin account created",
		slog.String("username", defaultAdminUsername),
	)
	return nil
}

func seedResume(ctx context.Context, db *sql.DB) error {
	sections := resume.NewSectionRepository(db)

	count, err := sections.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting resume sections: %w", err)
	}
	if count > 0 {
		return nil
	}

	defaults := []resume.Section{
		{SectionType: resume.SectionPersonalInfo, Title: "About Me", OrderIndex: 1, IsVisible: true},
		{SectionType: resume.SectionEducation, Title: "Education", OrderIndex: 2, IsVisible: true},
		{SectionType: resume.SectionExperience, Title: "Work Experience", OrderIndex: 3, IsVisible: true},
		{SectionType: resume.SectionSkills, Title: "Skills", OrderIndex: 4, IsVisible: true},
		{SectionType: resume.SectionProjects, Title: "Projects", OrderIndex: 5, IsVisible: true},
	}
	for i := range defaults {
		if err := sections.Create(ctx, &defaults[i]); err != nil {
			return fmt.Errorf("creating resume section %q: %w", defaults[i].Title, err)
		}
	}

	slog.Info("default resume sections created", slog.Int("count", len(defaults)))
	return nil
}

func seedCategories(ctx context.Context, db *sql.DB) error {
	categories := blog.NewCategoryRepository(db)

	existing, err := categories.List(ctx)
	if err != nil {
		return fmt.Errorf("listing categories: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	tech := "Technical articles and tutorials"
	life := "Everyday notes and reflections"
	reading := "Book notes and reviews"
	defaults := []blog.Category{
		{Name: "Technology", Slug: "technology", Description: &tech, Color: "#007bff"},
		{Name: "Life", Slug: "life", Description: &life, Color: "#28a745"},
		{Name: "Reading", Slug: "reading", Description: &reading, Color: "#6f42c1"},
	}
	for i := range defaults {
		if err := categories.Create(ctx, &defaults[i]); err != nil {
			return fmt.Errorf("creating category %q: %w", defaults[i].Name, err)
		}
	}

	slog.Info("default blog categories created", slog.Int("count", len(defaults)))
	return nil
}

package setup

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"portfolio-site/internal/domain"
	"portfolio-site/internal/repository"
	"portfolio-site/internal/service"
)

// 管理员账户的示例凭据，只在空库中写入一次。
const (
	adminUsername = "admin"
	adminEmail    = "admin@example.com"
	adminPassword = "admin123"
)

// Seed 在空库中写入示例数据：三个作品集项目和一个管理员账户。
// 两部分各自以表是否为空做判断，重复执行不会产生新记录。
// 管理员账户经过 AuthService 创建，密码以哈希形式入库。
func Seed(ctx context.Context, projectRepo repository.ProjectRepository, accountRepo repository.AccountRepository, auth *service.AuthService) error {
	if err := seedProjects(ctx, projectRepo); err != nil {
		return err
	}
	return seedAdminAccount(ctx, accountRepo, auth)
}

func seedProjects(ctx context.Context, projectRepo repository.ProjectRepository) error {
	count, err := projectRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count projects before seeding: %w", err)
	}
	if count > 0 {
		return nil
	}

	projects := []domain.Project{
		{
			Title:        "Rent Anime Boyfriend",
			Description:  "An innovative e-commerce platform where users can 'rent' anime boyfriend characters. Features include character profiles, booking system, payment integration, and user reviews. Built with React for dynamic UI.",
			Technologies: "React, HTML5, CSS3, JavaScript, Node.js",
			ImageURL:     "https://images.pexels.com/photos/8474824/pexels-photo-8474824.jpeg?auto=compress&cs=tinysrgb&w=600&h=400&fit=crop",
			GithubURL:    "https://github.com/Monsoonpandey/rent-anime-boyfriend",
			LiveURL:      "#",
		},
		{
			Title:        "Movie Booking System",
			Description:  "A full-stack movie ticket booking platform with Firebase integration. Users can browse movies, select seats, make bookings, and receive confirmations. Deployed on Vercel.",
			Technologies: "React, Firebase, HTML5, CSS3, JavaScript, Vercel",
			ImageURL:     "https://images.pexels.com/photos/7991379/pexels-photo-7991379.jpeg?auto=compress&cs=tinysrgb&w=600&h=400&fit=crop",
			GithubURL:    "https://github.com/Monsoonpandey/movie-booking-system",
			LiveURL:      "#",
		},
		{
			Title:        "Modern Portfolio Website",
			Description:  "A sleek, responsive portfolio website built with HTML5, CSS3, and Tailwind CSS. Features smooth animations, dark mode, project gallery, and contact form.",
			Technologies: "HTML5, CSS3, Tailwind CSS, JavaScript",
			ImageURL:     "https://images.pexels.com/photos/196644/pexels-photo-196644.jpeg?auto=compress&cs=tinysrgb&w=600&h=400&fit=crop",
			GithubURL:    "https://github.com/Monsoonpandey/tailwind-portfolio",
			LiveURL:      "#",
		},
	}
	if err := projectRepo.SaveAll(ctx, projects); err != nil {
		return fmt.Errorf("failed to seed projects: %w", err)
	}

	logrus.WithField("count", len(projects)).Info("Sample projects seeded")
	return nil
}

func seedAdminAccount(ctx context.Context, accountRepo repository.AccountRepository, auth *service.AuthService) error {
	count, err := accountRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count accounts before seeding: %w", err)
	}
	if count > 0 {
		return nil
	}

	admin, err := auth.Register(ctx, adminUsername, adminEmail, adminPassword)
	if err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	logrus.WithFields(logrus.Fields{"account_id": admin.ID, "username": admin.Username}).Info("Admin account seeded")
	return nil
}

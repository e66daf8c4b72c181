package main

import (
	"context"

	"go.uber.org/zap"

	"blogapi/internal/auth"
	"blogapi/internal/config"
	"blogapi/internal/db"
	"blogapi/internal/logger"
	"blogapi/internal/model"
	"blogapi/internal/repository"
	"blogapi/internal/service"
)

type seedUser struct {
	email       string
	username    string
	fullName    string
	password    string
	isSuperuser bool
}

type seedPost struct {
	author    string
	title     string
	content   string
	published bool
}

var seedUsers = []seedUser{
	{"admin@blogapi.local", "admin", "System Administrator", "admin123", true},
	{"john.doe@example.com", "johndoe", "John Doe", "password123", false},
	{"jane.smith@example.com", "janesmith", "Jane Smith", "password123", false},
	{"bob.wilson@example.com", "bobwilson", "Bob Wilson", "password123", false},
}

var seedPosts = []seedPost{
	{"johndoe", "Getting started", "A first look at the service.", true},
	{"johndoe", "Draft thoughts", "Not ready for the world yet.", false},
	{"janesmith", "Deployment notes", "How we ship this demo.", true},
	{"bobwilson", "On pagination", "Skip and limit, nothing fancier.", true},
}

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	log.Info("starting seed")

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal("database init", zap.Error(err))
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Post{}); err != nil {
		log.Fatal("auto-migrate", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	hasher := auth.NewHasher()
	userService := service.NewUserService(userRepo, hasher, nil, log)
	postService := service.NewPostService(postRepo, nil, log)

	ctx := context.Background()
	created := 0
	ids := make(map[string]uint)

	for _, su := range seedUsers {
		user, err := userService.Register(ctx, su.email, su.username, su.fullName, su.password, true)
		if err != nil {
			log.Warn("skipping user", zap.String("username", su.username), zap.Error(err))
			continue
		}
		if su.isSuperuser {
			user.IsSuperuser = true
			if err := userRepo.Update(ctx, user); err != nil {
				log.Fatal("promote superuser", zap.Error(err))
			}
		}
		ids[su.username] = user.ID
		created++
	}

	seeded := 0
	for _, sp := range seedPosts {
		authorID, ok := ids[sp.author]
		if !ok {
			continue
		}
		if _, err := postService.CreatePost(ctx, sp.title, sp.content, sp.published, &authorID); err != nil {
			log.Warn("skipping post", zap.String("title", sp.title), zap.Error(err))
			continue
		}
		seeded++
	}

	log.Info("seed completed", zap.Int("users", created), zap.Int("posts", seeded))
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"blogapi/internal/cache"
	apperrors "blogapi/internal/errors"
	"blogapi/internal/model"
	"blogapi/internal/repository"
)

const postCacheTTL = 5 * time.Minute

// PostService exposes blog post operations. Authorization is the handlers'
// concern; this layer only manages the data.
type PostService interface {
	CreatePost(ctx context.Context, title, content string, published bool, authorID *uint) (*model.Post, error)
	GetPost(ctx context.Context, id uint) (*model.Post, error)
	ListPosts(ctx context.Context, offset, limit int, publishedOnly bool) ([]model.Post, error)
	ListPostsByAuthor(ctx context.Context, authorID uint, offset, limit int) ([]model.Post, error)
	UpdatePost(ctx context.Context, id uint, patch *model.PostPatch) (*model.Post, error)
	DeletePost(ctx context.Context, id uint) error
	PublishPost(ctx context.Context, id uint) (*model.Post, error)
	UnpublishPost(ctx context.Context, id uint) (*model.Post, error)
}

type postService struct {
	repo  repository.PostRepository
	cache *cache.Client
	log   *zap.Logger
}

// NewPostService builds a PostService with repository and cache.
func NewPostService(repo repository.PostRepository, cache *cache.Client, log *zap.Logger) PostService {
	return &postService{repo: repo, cache: cache, log: log}
}

func (s *postService) cacheKey(id uint) string {
	return fmt.Sprintf("post:%d", id)
}

func (s *postService) CreatePost(ctx context.Context, title, content string, published bool, authorID *uint) (*model.Post, error) {
	post := &model.Post{
		Title:     title,
		Content:   content,
		Published: published,
		AuthorID:  authorID,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.log.Info("post created", zap.Uint("post_id", post.ID), zap.String("title", title))
	return post, nil
}

func (s *postService) GetPost(ctx context.Context, id uint) (*model.Post, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Post
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(post); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, postCacheTTL)
	}
	return post, nil
}

func (s *postService) ListPosts(ctx context.Context, offset, limit int, publishedOnly bool) ([]model.Post, error) {
	return s.repo.List(ctx, offset, limit, publishedOnly)
}

func (s *postService) ListPostsByAuthor(ctx context.Context, authorID uint, offset, limit int) ([]model.Post, error) {
	return s.repo.ListByAuthor(ctx, authorID, offset, limit)
}

// UpdatePost merges the set fields of patch onto the stored post.
func (s *postService) UpdatePost(ctx context.Context, id uint, patch *model.PostPatch) (*model.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, err
	}

	patch.Apply(post)
	if err := s.repo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	s.log.Info("post updated", zap.Uint("post_id", id))
	return post, nil
}

func (s *postService) DeletePost(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrPostNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	s.log.Info("post deleted", zap.Uint("post_id", id))
	return nil
}

func (s *postService) PublishPost(ctx context.Context, id uint) (*model.Post, error) {
	published := true
	return s.UpdatePost(ctx, id, &model.PostPatch{Published: &published})
}

func (s *postService) UnpublishPost(ctx context.Context, id uint) (*model.Post, error) {
	published := false
	return s.UpdatePost(ctx, id, &model.PostPatch{Published: &published})
}

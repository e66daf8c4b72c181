package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "blogapi/internal/errors"
	"blogapi/internal/model"
)

func TestPostService_CreatePost(t *testing.T) {
	repo := new(MockPostRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Post")).Return(nil)
	svc := NewPostService(repo, nil, zap.NewNop())

	authorID := uint(1)
	post, err := svc.CreatePost(context.Background(), "Hello", "First post.", true, &authorID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", post.Title)
	require.NotNil(t, post.AuthorID)
	assert.Equal(t, uint(1), *post.AuthorID)
	repo.AssertExpectations(t)
}

func TestPostService_GetPost_NotFound(t *testing.T) {
	repo := new(MockPostRepository)
	repo.On("FindByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)
	svc := NewPostService(repo, nil, zap.NewNop())

	_, err := svc.GetPost(context.Background(), 9)
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
}

func TestPostService_UpdatePost_PatchMergesOnlySetFields(t *testing.T) {
	authorID := uint(1)
	existing := &model.Post{
		ID:        3,
		Title:     "Old title",
		Content:   "Body",
		Published: false,
		AuthorID:  &authorID,
	}

	repo := new(MockPostRepository)
	repo.On("FindByID", mock.Anything, uint(3)).Return(existing, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*model.Post")).Return(nil)
	svc := NewPostService(repo, nil, zap.NewNop())

	updated, err := svc.UpdatePost(context.Background(), 3, &model.PostPatch{Title: strPtr("New title")})
	require.NoError(t, err)
	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, "Body", updated.Content)
	assert.False(t, updated.Published)
	require.NotNil(t, updated.AuthorID)
	assert.Equal(t, uint(1), *updated.AuthorID)
}

func TestPostService_PublishUnpublish(t *testing.T) {
	existing := &model.Post{ID: 3, Title: "T", Published: false}

	repo := new(MockPostRepository)
	repo.On("FindByID", mock.Anything, uint(3)).Return(existing, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*model.Post")).Return(nil)
	svc := NewPostService(repo, nil, zap.NewNop())

	published, err := svc.PublishPost(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, published.Published)

	unpublished, err := svc.UnpublishPost(context.Background(), 3)
	require.NoError(t, err)
	assert.False(t, unpublished.Published)
}

func TestPostService_DeletePost_NotFound(t *testing.T) {
	repo := new(MockPostRepository)
	repo.On("FindByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)
	svc := NewPostService(repo, nil, zap.NewNop())

	err := svc.DeletePost(context.Background(), 9)
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestPostService_ListPosts(t *testing.T) {
	repo := new(MockPostRepository)
	repo.On("List", mock.Anything, 0, 100, true).Return([]model.Post{{ID: 1, Published: true}}, nil)
	svc := NewPostService(repo, nil, zap.NewNop())

	posts, err := svc.ListPosts(context.Background(), 0, 100, true)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
	repo.AssertExpectations(t)
}

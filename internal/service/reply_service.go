package service

import (
	"context"
	"strings"

	"comunidad/internal/models"
	"comunidad/internal/repository"
)

type ReplyService struct {
	replyRepo repository.ReplyRepository
	postRepo  repository.PostRepository
}

type CreateReplyInput struct {
	PostID  uint
	UserID  uint
	Content string
}

func NewReplyService(replyRepo repository.ReplyRepository, postRepo repository.PostRepository) *ReplyService {
	return &ReplyService{replyRepo: replyRepo, postRepo: postRepo}
}

func (s *ReplyService) CreateReply(ctx context.Context, in CreateReplyInput) (*models.Reply, error) {
	content := strings.TrimSpace(in.Content)
	if in.PostID == 0 || in.UserID == 0 {
		return nil, models.NewValidationError("postId and userId are required")
	}
	if content == "" {
		return nil, models.NewValidationError("content is required")
	}
	if len(content) > maxContentLen {
		return nil, models.NewValidationError("content too long (max 10000 characters)")
	}
	if err := s.requirePost(ctx, in.PostID); err != nil {
		return nil, err
	}

	reply := &models.Reply{PostID: in.PostID, UserID: in.UserID, Content: content}
	if err := s.replyRepo.Create(ctx, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (s *ReplyService) ListReplies(ctx context.Context, postID uint) ([]*models.Reply, error) {
	if postID == 0 {
		return nil, models.NewValidationError("postId is required")
	}
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}
	return s.replyRepo.ListByPost(ctx, postID)
}

func (s *ReplyService) requirePost(ctx context.Context, postID uint) error {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError("Post", postID)
	}
	return nil
}

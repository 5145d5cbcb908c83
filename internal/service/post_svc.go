package service

import (
	"context"

	"marketplace_api/internal/model"
	"marketplace_api/internal/repository"
)

// ==================== PostService 动态服务 ====================

// PostService 动态、点赞与评论
type PostService struct {
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
}

// NewPostService 创建动态服务
func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo, profileRepo: profileRepo}
}

// authorName 优先使用资料里的 username
func (s *PostService) authorName(ctx context.Context, userID int64) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserDoesntExist
	}
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	if profile != nil && profile.Username != "" {
		return profile.Username, nil
	}
	return user.DisplayName, nil
}

// Create 发布动态
func (s *PostService) Create(ctx context.Context, userID int64, text string) (*model.Post, error) {
	name, err := s.authorName(ctx, userID)
	if err != nil {
		return nil, err
	}
	post := &model.Post{
		UserID:   userID,
		Text:     text,
		Name:     name,
		Likes:    []model.PostLike{},
		Comments: []model.PostComment{},
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// List 全部动态
func (s *PostService) List(ctx context.Context) ([]model.Post, error) {
	return s.postRepo.List(ctx)
}

// Get 单条动态
func (s *PostService) Get(ctx context.Context, id int64) (*model.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// ListByUser 某用户的动态，为空视为未找到
func (s *PostService) ListByUser(ctx context.Context, userID int64) ([]model.Post, error) {
	posts, err := s.postRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, ErrPostsNotFound
	}
	return posts, nil
}

// Delete 只有作者可以删除
func (s *PostService) Delete(ctx context.Context, userID, id int64) error {
	post, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return ErrNotAuthorized
	}
	return s.postRepo.Delete(ctx, id)
}

// ==================== 点赞 ====================

// Like 点赞，返回最新点赞列表
func (s *PostService) Like(ctx context.Context, userID, postID int64) ([]model.PostLike, error) {
	if _, err := s.Get(ctx, postID); err != nil {
		return nil, err
	}
	added, err := s.postRepo.AddLike(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if !added {
		return nil, ErrAlreadyLiked
	}
	return s.postRepo.ListLikes(ctx, postID)
}

// Unlike 取消点赞
func (s *PostService) Unlike(ctx context.Context, userID, postID int64) ([]model.PostLike, error) {
	if _, err := s.Get(ctx, postID); err != nil {
		return nil, err
	}
	removed, err := s.postRepo.RemoveLike(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, ErrNotLiked
	}
	return s.postRepo.ListLikes(ctx, postID)
}

// ==================== 评论 ====================

// Comment 添加评论，返回最新评论列表
func (s *PostService) Comment(ctx context.Context, userID, postID int64, text string) ([]model.PostComment, error) {
	if _, err := s.Get(ctx, postID); err != nil {
		return nil, err
	}
	name, err := s.authorName(ctx, userID)
	if err != nil {
		return nil, err
	}
	comment := &model.PostComment{PostID: postID, UserID: userID, Text: text, Name: name}
	if err := s.postRepo.AddComment(ctx, comment); err != nil {
		return nil, err
	}
	return s.postRepo.ListComments(ctx, postID)
}

// DeleteComment 只删除指定评论，且只有评论者本人可以删除
func (s *PostService) DeleteComment(ctx context.Context, userID, postID, commentID int64) ([]model.PostComment, error) {
	if _, err := s.Get(ctx, postID); err != nil {
		return nil, err
	}
	comment, err := s.postRepo.GetComment(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	if comment.UserID != userID {
		return nil, ErrNotAuthorized
	}
	if err := s.postRepo.DeleteComment(ctx, commentID); err != nil {
		return nil, err
	}
	return s.postRepo.ListComments(ctx, postID)
}

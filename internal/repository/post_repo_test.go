package repository

import (
	"context"
	"testing"

	"gorm.io/datatypes"

	"marketplace_api/internal/model"
)

func TestPostRepository_Likes(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author@example.com")
	fan := createTestUser(t, db, "fan@example.com")
	post := &model.Post{UserID: author.ID, Text: "first", Name: "Test User"}
	if err := repo.Create(ctx, post); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	tests := []struct {
		name string
		op   func() (bool, error)
		want bool
	}{
		{"like", func() (bool, error) { return repo.AddLike(ctx, post.ID, fan.ID) }, true},
		{"like again", func() (bool, error) { return repo.AddLike(ctx, post.ID, fan.ID) }, false},
		{"author likes", func() (bool, error) { return repo.AddLike(ctx, post.ID, author.ID) }, true},
		{"unlike", func() (bool, error) { return repo.RemoveLike(ctx, post.ID, fan.ID) }, true},
		{"unlike again", func() (bool, error) { return repo.RemoveLike(ctx, post.ID, fan.ID) }, false},
	}
	for _, tt := range tests {
		got, err := tt.op()
		if err != nil {
			t.Fatalf("%s: error = %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("%s: got = %v, want %v", tt.name, got, tt.want)
		}
	}

	likes, _ := repo.ListLikes(ctx, post.ID)
	if len(likes) != 1 || likes[0].UserID != author.ID {
		t.Errorf("likes = %+v, want only author", likes)
	}
}

func TestPostRepository_ListOrderAndComments(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "author@example.com")
	for _, text := range []string{"one", "two", "three"} {
		if err := repo.Create(ctx, &model.Post{UserID: user.ID, Text: text}); err != nil {
			t.Fatal(err)
		}
	}

	posts, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(posts) != 3 || posts[0].Text != "three" {
		t.Fatalf("List() 顺序错误: %+v", posts)
	}

	target := posts[0]
	c1 := &model.PostComment{PostID: target.ID, UserID: user.ID, Text: "c1"}
	c2 := &model.PostComment{PostID: target.ID, UserID: user.ID, Text: "c2"}
	repo.AddComment(ctx, c1)
	repo.AddComment(ctx, c2)

	got, _ := repo.GetByID(ctx, target.ID)
	if len(got.Comments) != 2 || got.Comments[0].Text != "c2" {
		t.Errorf("comments = %+v, want newest first", got.Comments)
	}

	if c, _ := repo.GetComment(ctx, posts[1].ID, c1.ID); c != nil {
		t.Error("评论不属于该帖子时应返回 nil")
	}

	if err := repo.DeleteComment(ctx, c1.ID); err != nil {
		t.Fatal(err)
	}
	comments, _ := repo.ListComments(ctx, target.ID)
	if len(comments) != 1 || comments[0].ID != c2.ID {
		t.Errorf("删除后 comments = %+v", comments)
	}

	if err := repo.Delete(ctx, target.ID); err != nil {
		t.Fatal(err)
	}
	if p, _ := repo.GetByID(ctx, target.ID); p != nil {
		t.Error("帖子未删除")
	}
	byUser, _ := repo.ListByUser(ctx, user.ID)
	if len(byUser) != 2 {
		t.Errorf("ListByUser() len = %d, want 2", len(byUser))
	}
}

func TestProfileRepository_Upsert(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()
	user := createTestUser(t, db, "p@example.com")

	first := &model.Profile{
		UserID:   user.ID,
		Username: "cheesy",
		Social:   datatypes.NewJSONType(model.SocialLinks{Twitter: "@cheesy"}),
	}
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	second := &model.Profile{UserID: user.ID, Username: "cheddar", Bio: "hard cheese"}
	if err := repo.Upsert(ctx, second); err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}

	got, err := repo.GetByUserID(ctx, user.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByUserID() = %v, %v", got, err)
	}
	if got.Username != "cheddar" || got.Bio != "hard cheese" {
		t.Errorf("profile = %+v", got)
	}
	if got.User == nil || got.User.DisplayName != "Test User" {
		t.Errorf("profile.User = %+v", got.User)
	}

	all, _ := repo.List(ctx)
	if len(all) != 1 {
		t.Errorf("List() len = %d, want 1", len(all))
	}

	v, ok, err := repo.GetField(ctx, user.ID, "username")
	if err != nil || !ok || v != "cheddar" {
		t.Errorf("GetField() = %v, %v, %v", v, ok, err)
	}
	if _, ok, _ := repo.GetField(ctx, 999, "username"); ok {
		t.Error("不存在的资料应返回 ok=false")
	}
}

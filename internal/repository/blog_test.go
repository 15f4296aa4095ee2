package repository

import (
	"context"
	"testing"

	"travelbuddy/internal/cache"
	"travelbuddy/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlogRepository_CountLikesForBlogs(t *testing.T) {
	db := newTestDB(t)
	repo := NewBlogRepository(db)
	ctx := context.Background()

	author := &models.User{Name: "Author", Email: "author@example.com", Password: "x"}
	fan1 := &models.User{Name: "Fan One", Email: "fan1@example.com", Password: "x"}
	fan2 := &models.User{Name: "Fan Two", Email: "fan2@example.com", Password: "x"}
	for _, u := range []*models.User{author, fan1, fan2} {
		require.NoError(t, db.Create(u).Error)
	}

	popular := &models.Blog{Title: "Lisbon on a budget", Content: "...", AuthorID: author.ID}
	quiet := &models.Blog{Title: "Hidden Porto", Content: "...", AuthorID: author.ID}
	for _, b := range []*models.Blog{popular, quiet} {
		require.NoError(t, repo.Create(ctx, b))
	}

	require.NoError(t, repo.CreateLike(ctx, &models.Like{UserID: fan1.ID, BlogID: popular.ID}))
	require.NoError(t, repo.CreateLike(ctx, &models.Like{UserID: fan2.ID, BlogID: popular.ID}))

	counts, err := repo.CountLikesForBlogs(ctx, []uint{popular.ID, quiet.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[popular.ID])
	assert.Equal(t, int64(0), counts[quiet.ID])

	// Empty input short-circuits without touching the database.
	counts, err = repo.CountLikesForBlogs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestBlogRepository_LikeToggleRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewBlogRepository(db)
	ctx := context.Background()

	author := &models.User{Name: "Author", Email: "author@example.com", Password: "x"}
	fan := &models.User{Name: "Fan", Email: "fan@example.com", Password: "x"}
	for _, u := range []*models.User{author, fan} {
		require.NoError(t, db.Create(u).Error)
	}

	blog := &models.Blog{Title: "Kyoto in autumn", Content: "...", AuthorID: author.ID}
	require.NoError(t, repo.Create(ctx, blog))

	like, err := repo.GetLike(ctx, fan.ID, blog.ID)
	require.NoError(t, err)
	assert.Nil(t, like)

	require.NoError(t, repo.CreateLike(ctx, &models.Like{UserID: fan.ID, BlogID: blog.ID}))

	like, err = repo.GetLike(ctx, fan.ID, blog.ID)
	require.NoError(t, err)
	require.NotNil(t, like)

	ids, err := repo.GetLikedBlogIDs(ctx, fan.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{blog.ID}, ids)

	require.NoError(t, repo.DeleteLike(ctx, fan.ID, blog.ID))
	like, err = repo.GetLike(ctx, fan.ID, blog.ID)
	require.NoError(t, err)
	assert.Nil(t, like)
}

func TestBlogRepository_GetWishlistBlogs(t *testing.T) {
	db := newTestDB(t)
	repo := NewBlogRepository(db)
	ctx := context.Background()

	author := &models.User{Name: "Author", Email: "author@example.com", Password: "x"}
	saver := &models.User{Name: "Saver", Email: "saver@example.com", Password: "x"}
	for _, u := range []*models.User{author, saver} {
		require.NoError(t, db.Create(u).Error)
	}

	saved := &models.Blog{Title: "Azores ferry guide", Content: "...", AuthorID: author.ID}
	skipped := &models.Blog{Title: "Madrid tapas", Content: "...", AuthorID: author.ID}
	for _, b := range []*models.Blog{saved, skipped} {
		require.NoError(t, repo.Create(ctx, b))
	}

	require.NoError(t, repo.CreateWishlistItem(ctx, &models.WishlistItem{UserID: saver.ID, BlogID: saved.ID}))

	blogs, err := repo.GetWishlistBlogs(ctx, saver.ID)
	require.NoError(t, err)
	require.Len(t, blogs, 1)
	assert.Equal(t, saved.ID, blogs[0].ID)
	assert.Equal(t, "Author", blogs[0].Author.Name)

	ids, err := repo.GetWishlistedBlogIDs(ctx, saver.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{saved.ID}, ids)
}

func TestBlogRepository_CachedReads(t *testing.T) {
	db := newTestDB(t)
	repo := NewBlogRepository(db)
	ctx := context.Background()

	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache.SetClient(rc)
	t.Cleanup(func() {
		cache.SetClient(nil)
		_ = rc.Close()
	})

	author := &models.User{Name: "Author", Email: "author@example.com", Password: "x"}
	fan := &models.User{Name: "Fan", Email: "fan@example.com", Password: "x"}
	for _, u := range []*models.User{author, fan} {
		require.NoError(t, db.Create(u).Error)
	}

	blog := &models.Blog{Title: "Original title", Content: "...", AuthorID: author.ID}
	require.NoError(t, repo.Create(ctx, blog))

	got, err := repo.GetCached(ctx, blog.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original title", got.Title)
	assert.True(t, mr.Exists(cache.BlogKey(blog.ID)))

	// A direct row update is not visible until the key drops.
	require.NoError(t, db.Model(&models.Blog{}).Where("id = ?", blog.ID).Update("title", "Renamed").Error)
	got, err = repo.GetCached(ctx, blog.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original title", got.Title)

	count, err := repo.CountLikesCached(ctx, blog.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// The like toggle drops the blog body, the counter and the fan's
	// matchmaking entry.
	require.NoError(t, mr.Set(cache.MatchmakingKey(fan.ID), "[]"))
	require.NoError(t, repo.CreateLike(ctx, &models.Like{UserID: fan.ID, BlogID: blog.ID}))
	assert.False(t, mr.Exists(cache.BlogKey(blog.ID)))
	assert.False(t, mr.Exists(cache.BlogLikeCountKey(blog.ID)))
	assert.False(t, mr.Exists(cache.MatchmakingKey(fan.ID)))

	got, err = repo.GetCached(ctx, blog.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)

	count, err = repo.CountLikesCached(ctx, blog.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, mr.Set(cache.MatchmakingKey(fan.ID), "[]"))
	require.NoError(t, repo.CreateWishlistItem(ctx, &models.WishlistItem{UserID: fan.ID, BlogID: blog.ID}))
	assert.False(t, mr.Exists(cache.MatchmakingKey(fan.ID)))
}

func TestBlogRepository_DeleteIsSoft(t *testing.T) {
	db := newTestDB(t)
	repo := NewBlogRepository(db)
	ctx := context.Background()

	author := &models.User{Name: "Author", Email: "author@example.com", Password: "x"}
	require.NoError(t, db.Create(author).Error)

	blog := &models.Blog{Title: "Gone soon", Content: "...", AuthorID: author.ID}
	require.NoError(t, repo.Create(ctx, blog))
	require.NoError(t, repo.Delete(ctx, blog.ID))

	_, err := repo.GetByID(ctx, blog.ID)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	// The row survives underneath the soft delete.
	var count int64
	require.NoError(t, db.Unscoped().Model(&models.Blog{}).Where("id = ?", blog.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

package cyberfolio

import (
	"testing"
	"time"
)

func TestCacheServesEmptyStore(t *testing.T) {
	s := newTestStore(t)
	cache := NewPostCache(s, time.Minute)

	posts, err := cache.ListPosts("")
	if err != nil {
		t.Fatal(err)
	}
	if len(posts) != 0 {
		t.Errorf("ListPosts on empty store = %d posts", len(posts))
	}
	if _, err := cache.GetPost("anything"); err != ErrNotFound {
		t.Errorf("GetPost err = %v, want ErrNotFound", err)
	}
}

func TestCacheInvalidate(t *testing.T) {
	s := newTestStore(t)
	cache := NewPostCache(s, time.Hour)

	if _, err := cache.ListPosts(""); err != nil {
		t.Fatal(err)
	}

	// A write behind the cache's back is invisible until invalidation.
	if err := s.CreatePost(testPost("fresh", true)); err != nil {
		t.Fatal(err)
	}
	posts, _ := cache.ListPosts("")
	if len(posts) != 0 {
		t.Errorf("stale read = %d posts, want 0", len(posts))
	}

	cache.Invalidate()
	posts, err := cache.ListPosts("")
	if err != nil {
		t.Fatal(err)
	}
	if len(posts) != 1 || posts[0].Slug != "fresh" {
		t.Errorf("after invalidate = %+v", posts)
	}
}

func TestCacheTagFilter(t *testing.T) {
	s := newTestStore(t)
	if err := s.CreatePost(testPost("a", true, "go")); err != nil {
		t.Fatal(err)
	}
	if err := s.CreatePost(testPost("b", true, "rust")); err != nil {
		t.Fatal(err)
	}
	cache := NewPostCache(s, time.Minute)

	posts, err := cache.ListPosts("GO")
	if err != nil {
		t.Fatal(err)
	}
	if len(posts) != 1 || posts[0].Slug != "a" {
		t.Errorf("ListPosts(GO) = %+v", posts)
	}

	tags, err := cache.ListTags()
	if err != nil {
		t.Fatal(err)
	}
	if len(tags) != 2 {
		t.Errorf("ListTags = %v", tags)
	}
}

func TestCacheGetPost(t *testing.T) {
	s := newTestStore(t)
	if err := s.CreatePost(testPost("hello", true)); err != nil {
		t.Fatal(err)
	}
	cache := NewPostCache(s, time.Minute)

	post, err := cache.GetPost("hello")
	if err != nil {
		t.Fatal(err)
	}
	if post.Slug != "hello" {
		t.Errorf("GetPost = %+v", post)
	}
	if _, err := cache.GetPost("missing"); err != ErrNotFound {
		t.Errorf("GetPost(missing) err = %v, want ErrNotFound", err)
	}
}

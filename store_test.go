package cyberfolio

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"cyberfolio/views"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "site.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testPost(slug string, published bool, tags ...string) views.BlogPost {
	return views.BlogPost{
		ID:        uuid.NewString(),
		Slug:      slug,
		Title:     "Title " + slug,
		Date:      "2025-07-15",
		UpdatedAt: "2025-07-15T12:00:00Z",
		Tags:      tags,
		Summary:   "summary",
		Content:   "# heading\n\nbody",
		Published: published,
	}
}

func TestStoreEmptyLists(t *testing.T) {
	s := newTestStore(t)

	posts, err := s.ListPublished("")
	if err != nil {
		t.Fatal(err)
	}
	if len(posts) != 0 {
		t.Errorf("ListPublished on empty store = %d posts", len(posts))
	}
	tags, err := s.ListTags()
	if err != nil {
		t.Fatal(err)
	}
	if len(tags) != 0 {
		t.Errorf("ListTags on empty store = %v", tags)
	}
}

func TestStoreCreateAndGet(t *testing.T) {
	s := newTestStore(t)
	p := testPost("first-post", true, "go", "web")
	if err := s.CreatePost(p); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetBySlug("first-post")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != p.ID || got.Title != p.Title || !got.Published {
		t.Errorf("GetBySlug = %+v", got)
	}
	if got.Link != "/blog/first-post/" {
		t.Errorf("Link = %q", got.Link)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "go" {
		t.Errorf("Tags = %v", got.Tags)
	}

	byID, err := s.GetByID(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if byID.Slug != "first-post" {
		t.Errorf("GetByID slug = %q", byID.Slug)
	}
}

func TestStoreDraftsHiddenFromPublishedViews(t *testing.T) {
	s := newTestStore(t)
	if err := s.CreatePost(testPost("live", true, "go")); err != nil {
		t.Fatal(err)
	}
	if err := s.CreatePost(testPost("draft", false, "secret")); err != nil {
		t.Fatal(err)
	}

	posts, err := s.ListPublished("")
	if err != nil {
		t.Fatal(err)
	}
	if len(posts) != 1 || posts[0].Slug != "live" {
		t.Errorf("ListPublished = %+v", posts)
	}
	if _, err := s.GetBySlug("draft"); err != ErrNotFound {
		t.Errorf("GetBySlug(draft) err = %v, want ErrNotFound", err)
	}
	tags, _ := s.ListTags()
	for _, tag := range tags {
		if tag == "secret" {
			t.Error("draft tags leaked into ListTags")
		}
	}

	all, err := s.ListAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("ListAll = %d posts, want 2", len(all))
	}
}

func TestStoreTagFilter(t *testing.T) {
	s := newTestStore(t)
	if err := s.CreatePost(testPost("a", true, "Go", "web")); err != nil {
		t.Fatal(err)
	}
	if err := s.CreatePost(testPost("b", true, "rust")); err != nil {
		t.Fatal(err)
	}

	// Tags are normalized to lowercase on save and matched whole.
	posts, err := s.ListPublished("go")
	if err != nil {
		t.Fatal(err)
	}
	if len(posts) != 1 || posts[0].Slug != "a" {
		t.Errorf("ListPublished(go) = %+v", posts)
	}
}

func TestStoreUpdateAndDelete(t *testing.T) {
	s := newTestStore(t)
	p := testPost("original", true)
	if err := s.CreatePost(p); err != nil {
		t.Fatal(err)
	}

	p.Slug = "renamed"
	p.Title = "New title"
	p.Published = false
	if err := s.UpdatePost(p); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetByID(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Slug != "renamed" || got.Title != "New title" || got.Published {
		t.Errorf("after update = %+v", got)
	}

	if err := s.DeletePost(p.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetByID(p.ID); err != ErrNotFound {
		t.Errorf("GetByID after delete err = %v, want ErrNotFound", err)
	}
}

func TestStoreSlugTaken(t *testing.T) {
	s := newTestStore(t)
	p := testPost("taken", true)
	if err := s.CreatePost(p); err != nil {
		t.Fatal(err)
	}

	taken, err := s.SlugTaken("taken", "")
	if err != nil {
		t.Fatal(err)
	}
	if !taken {
		t.Error("SlugTaken(taken) = false")
	}
	// The owning post may keep its own slug.
	taken, err = s.SlugTaken("taken", p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if taken {
		t.Error("SlugTaken excluding owner = true")
	}
	taken, _ = s.SlugTaken("free", "")
	if taken {
		t.Error("SlugTaken(free) = true")
	}
}

func TestStoreImages(t *testing.T) {
	s := newTestStore(t)
	img := views.Image{
		Filename:     "cover.jpg",
		OriginalName: "Cover Photo.png",
		Width:        800,
		Height:       600,
		Size:         12345,
		UploadedAt:   "2025-07-15T12:00:00Z",
	}
	if err := s.SaveImage(img); err != nil {
		t.Fatal(err)
	}

	images, err := s.ListImages()
	if err != nil {
		t.Fatal(err)
	}
	if len(images) != 1 || images[0] != img {
		t.Errorf("ListImages = %+v", images)
	}

	if err := s.DeleteImage("cover.jpg"); err != nil {
		t.Fatal(err)
	}
	images, _ = s.ListImages()
	if len(images) != 0 {
		t.Errorf("ListImages after delete = %+v", images)
	}
}

func TestParseTags(t *testing.T) {
	if got := ParseTags(",go,web,"); len(got) != 2 || got[0] != "go" || got[1] != "web" {
		t.Errorf("ParseTags = %v", got)
	}
	if got := ParseTags(""); got != nil {
		t.Errorf("ParseTags empty = %v", got)
	}
	if got := ParseTags(",,"); got != nil {
		t.Errorf("ParseTags(,,) = %v", got)
	}
}

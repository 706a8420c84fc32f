package views

// SiteConfig holds site-wide settings populated from environment variables.
// Every page component receives this so nothing is hardcoded.
type SiteConfig struct {
	Name        string // SITE_NAME  (default "Portfolio")
	URL         string // SITE_URL   (default "http://localhost:3000")
	Description string // SITE_DESCRIPTION
	Author      string // SITE_AUTHOR
	Email       string // SITE_EMAIL, shown on the contact page
	GitHub      string // SITE_GITHUB profile URL
	LinkedIn    string // SITE_LINKEDIN profile URL
}

// PageMeta carries per-page OpenGraph and SEO metadata into the head template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}

// BlogPost is the core content type stored in SQLite and rendered by templates.
// ID is a UUID assigned at creation; Slug is the URL identity and is unique.
type BlogPost struct {
	ID         string
	Slug       string
	Title      string
	Date       string // publish date, YYYY-MM-DD
	UpdatedAt  string // RFC3339, set on every save
	Tags       []string
	Summary    string
	Content    string // markdown
	CoverImage string // /public/uploads/<filename>, optional
	Link       string
	Published  bool
}

// Image is the stored metadata for an uploaded cover image.
type Image struct {
	Filename     string
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string // RFC3339
}

// VisitStats is the public visit badge rendered in the site footer.
type VisitStats struct {
	Today     int
	ThisMonth int
	Total     int
}

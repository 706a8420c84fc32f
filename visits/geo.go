package visits

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/oschwald/geoip2-golang"
)

// Location is a coarse best-effort geolocation result. The zero value means
// "lookup failed or unavailable" and is always a valid outcome.
type Location struct {
	IP      string
	Country string
	City    string
}

// Locator resolves an IP address to a coarse location. Implementations must
// degrade to a zero Location on failure instead of blocking visit recording.
type Locator interface {
	Locate(ctx context.Context, ip string) Location
}

// NopLocator always returns an empty location.
type NopLocator struct{}

func (NopLocator) Locate(context.Context, string) Location { return Location{} }

// HTTPLocator queries a keyless IP-geolocation endpoint that answers
// {"ip": ..., "country_name": ..., "city": ...}.
type HTTPLocator struct {
	Endpoint string
	Client   *http.Client
}

// NewHTTPLocator returns a locator against the given endpoint base URL with
// a short client timeout so a hung lookup cannot stall the recorder.
func NewHTTPLocator(endpoint string) *HTTPLocator {
	return &HTTPLocator{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: 3 * time.Second},
	}
}

func (h *HTTPLocator) Locate(ctx context.Context, ip string) Location {
	url := fmt.Sprintf("%s/%s/json/", h.Endpoint, ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Location{}
	}
	resp, err := h.Client.Do(req)
	if err != nil {
		return Location{}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Location{}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return Location{}
	}
	var payload struct {
		IP          string `json:"ip"`
		CountryName string `json:"country_name"`
		City        string `json:"city"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return Location{}
	}
	return Location{IP: payload.IP, Country: payload.CountryName, City: payload.City}
}

// MMDBLocator resolves locations from a local MaxMind City database.
type MMDBLocator struct {
	reader *geoip2.Reader
}

// OpenMMDB opens a GeoIP2/GeoLite2 City database at path.
func OpenMMDB(path string) (*MMDBLocator, error) {
	r, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open geoip db: %w", err)
	}
	return &MMDBLocator{reader: r}, nil
}

// Close releases the database handle.
func (m *MMDBLocator) Close() error {
	return m.reader.Close()
}

func (m *MMDBLocator) Locate(_ context.Context, ip string) Location {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return Location{}
	}
	rec, err := m.reader.City(parsed)
	if err != nil {
		return Location{}
	}
	return Location{
		IP:      ip,
		Country: rec.Country.Names["en"],
		City:    rec.City.Names["en"],
	}
}

// NewLocator picks the local database when one is configured and readable,
// falling back to the HTTP endpoint.
func NewLocator(mmdbPath, endpoint string) Locator {
	if mmdbPath != "" {
		loc, err := OpenMMDB(mmdbPath)
		if err == nil {
			return loc
		}
		log.Printf("visits: geoip database unavailable, using http lookup: %v", err)
	}
	if endpoint == "" {
		return NopLocator{}
	}
	return NewHTTPLocator(endpoint)
}

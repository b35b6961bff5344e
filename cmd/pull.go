package main

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/therapistindex/directory-cli/internal/config"
	"github.com/therapistindex/directory-cli/internal/ingest"
	"github.com/therapistindex/directory-cli/internal/model"
	"github.com/therapistindex/directory-cli/internal/resilience"
	"github.com/therapistindex/directory-cli/pkg/outscraper"
)

var (
	pullQuery          string
	pullLocation       string
	pullFromConfig     bool
	pullFilterLocation string
	pullLimit          int
	pullOutputDir      string
)

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Pull raw listings from the Google Maps search API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !pullFromConfig && (pullQuery == "" || pullLocation == "") {
			return eris.New("provide --query and --location, or use --from-config")
		}
		if cfg.Outscraper.Key == "" {
			return eris.New("outscraper API key not set (THERAPISTINDEX_OUTSCRAPER_KEY)")
		}

		client := outscraper.NewClient(cfg.Outscraper.Key,
			outscraper.WithBaseURL(cfg.Outscraper.BaseURL))

		if pullFromConfig {
			return pullAllQueries(cmd.Context(), client)
		}

		listings, err := pullOne(cmd.Context(), client, pullQuery, pullLocation)
		if err != nil {
			return err
		}
		if len(listings) == 0 {
			return eris.New("no results returned; check the query and API key")
		}

		path := filepath.Join(pullOutputDir, fmt.Sprintf("outscraper_%s.csv", fileSlug(pullQuery+"_"+pullLocation)))
		if err := ingest.Write(path, listings); err != nil {
			return err
		}
		zap.L().Info("pull: saved", zap.Int("records", len(listings)), zap.String("path", path))
		return nil
	},
}

func pullAllQueries(ctx context.Context, client outscraper.Client) error {
	queries, err := config.LoadQueries(cfg.Keywords.Dir)
	if err != nil {
		return err
	}

	active := queries.Queries
	if pullFilterLocation != "" {
		needle := strings.ToLower(pullFilterLocation)
		var matched []config.Query
		for _, q := range active {
			if strings.Contains(strings.ToLower(q.Location), needle) {
				matched = append(matched, q)
			}
		}
		if len(matched) == 0 {
			return eris.Errorf("no queries match location filter: %s", pullFilterLocation)
		}
		active = matched
	}

	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Priority < active[j].Priority
	})

	// Collect per location so each region lands in one file.
	byLocation := make(map[string][]model.Listing)
	var order []string

	delay := time.Duration(cfg.Outscraper.QueryDelaySecs) * time.Second
	for i, q := range active {
		zap.L().Info("pull: query",
			zap.Int("priority", q.Priority),
			zap.String("search_term", q.SearchTerm),
			zap.String("location", q.Location),
		)

		listings, err := pullOne(ctx, client, q.SearchTerm, q.Location)
		if err != nil {
			return err
		}

		key := fileSlug(q.Location)
		if _, ok := byLocation[key]; !ok {
			order = append(order, key)
		}
		byLocation[key] = append(byLocation[key], listings...)

		// Be generous between queries to avoid API errors.
		if delay > 0 && i < len(active)-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	for _, key := range order {
		listings := byLocation[key]
		if len(listings) == 0 {
			continue
		}
		path := filepath.Join(pullOutputDir, fmt.Sprintf("outscraper_%s.csv", key))
		if err := ingest.Write(path, listings); err != nil {
			return err
		}
		zap.L().Info("pull: saved", zap.Int("records", len(listings)), zap.String("path", path))
	}
	return nil
}

func pullOne(ctx context.Context, client outscraper.Client, query, location string) ([]model.Listing, error) {
	searchQuery := fmt.Sprintf("%s, %s", query, location)

	places, err := resilience.DoVal(ctx, resilience.RetryConfig{
		ShouldRetry: func(err error) bool {
			var apiErr *outscraper.APIError
			if eris.As(err, &apiErr) {
				return resilience.IsTransientHTTPStatus(apiErr.StatusCode)
			}
			return resilience.IsTransient(err)
		},
	}, func(ctx context.Context) ([]outscraper.Place, error) {
		return client.Search(ctx, searchQuery,
			outscraper.WithLimit(pullLimit),
			outscraper.WithLanguage(cfg.Outscraper.Language),
			outscraper.WithRegion(cfg.Outscraper.Region),
		)
	})
	if err != nil {
		return nil, eris.Wrapf(err, "pull: query %q", searchQuery)
	}

	zap.L().Info("pull: results", zap.String("query", searchQuery), zap.Int("count", len(places)))

	listings := make([]model.Listing, 0, len(places))
	for _, p := range places {
		listings = append(listings, placeListing(p))
	}
	return listings, nil
}

// placeListing maps an API place onto our canonical listing shape. The
// detailed subtypes win over the single category; the short state code wins
// over the spelled-out state.
func placeListing(p outscraper.Place) model.Listing {
	l := model.Listing{
		Name:        p.Name,
		Address:     p.FullAddress,
		Street:      p.Street,
		City:        p.City,
		State:       p.State,
		ZipCode:     p.PostalCode,
		CountryCode: p.CountryCode,
		Phone:       p.Phone,
		Website:     p.Site,
		Rating:      p.Rating.String(),
		ReviewCount: p.Reviews.String(),
		Category:    p.Category,
		Hours:       string(p.WorkingHours),
		Latitude:    p.Latitude.String(),
		Longitude:   p.Longitude.String(),
		PlaceID:     p.PlaceID,
		GoogleID:    p.GoogleID,
		Status:      p.BusinessStatus,
		PhotoURL:    p.Photo,
		Description: p.Description,
	}
	if p.Subtypes != "" {
		l.Category = p.Subtypes
	}
	if p.StateCode != "" {
		l.State = p.StateCode
	}
	return l
}

var fileSlugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// fileSlug converts text into a filename-safe slug.
func fileSlug(text string) string {
	s := fileSlugPattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(text)), "_")
	return strings.Trim(s, "_")
}

func init() {
	pullCmd.Flags().StringVarP(&pullQuery, "query", "q", "", "search query (e.g. 'therapist')")
	pullCmd.Flags().StringVarP(&pullLocation, "location", "l", "", "location (e.g. 'Washington, DC')")
	pullCmd.Flags().BoolVar(&pullFromConfig, "from-config", false, "run all queries from the query config")
	pullCmd.Flags().StringVar(&pullFilterLocation, "filter-location", "", "only run queries matching this location")
	pullCmd.Flags().IntVar(&pullLimit, "limit", 100, "max results per query")
	pullCmd.Flags().StringVar(&pullOutputDir, "output-dir", filepath.Join("data", "raw"), "output directory for raw CSVs")
	rootCmd.AddCommand(pullCmd)
}

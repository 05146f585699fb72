package artisan

import (
	"context"
	"fmt"
	"sort"

	"github.com/evcraddock/sos-artisans/internal/apperr"
	"github.com/evcraddock/sos-artisans/internal/client"
	"github.com/evcraddock/sos-artisans/internal/comment"
	"github.com/evcraddock/sos-artisans/internal/config"
)

// DefaultTopRatedLimit is used by TopRated when no positive limit is given.
const DefaultTopRatedLimit = 10

// Transport executes requests and always answers with an envelope.
// *client.Client satisfies it.
type Transport interface {
	Get(ctx context.Context, path string) *client.Response
	Post(ctx context.Context, path string, body interface{}) *client.Response
	Patch(ctx context.Context, path string, body interface{}) *client.Response
	Delete(ctx context.Context, path string) *client.Response
}

// Service turns envelopes into typed values or *apperr.Error values.
type Service struct {
	transport Transport
	endpoints config.Endpoints
}

// NewService creates an artisan service over a transport.
func NewService(transport Transport, endpoints config.Endpoints) *Service {
	return &Service{transport: transport, endpoints: endpoints}
}

func (s *Service) itemPath(id int64) string {
	return fmt.Sprintf("%s%d/", s.endpoints.Artisans, id)
}

// List returns every artisan. A missing payload yields an empty slice.
func (s *Service) List(ctx context.Context) ([]*Artisan, error) {
	return s.list(ctx, s.endpoints.Artisans)
}

// Get returns one artisan with its comments.
func (s *Service) Get(ctx context.Context, id int64) (*Artisan, error) {
	a, ok, err := fetch[Artisan](s.transport.Get(ctx, s.itemPath(id)))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("Artisan not found")
	}
	return &a, nil
}

// Filter returns the artisans matching f. Empty filters behave like List.
func (s *Service) Filter(ctx context.Context, f Filters) ([]*Artisan, error) {
	return s.list(ctx, s.endpoints.Artisans+f.Query())
}

// ByMetier returns the artisans of one trade.
func (s *Service) ByMetier(ctx context.Context, metier string) ([]*Artisan, error) {
	return s.Filter(ctx, Filters{Metier: metier})
}

// ByVille returns the artisans of one city.
func (s *Service) ByVille(ctx context.Context, ville string) ([]*Artisan, error) {
	return s.Filter(ctx, Filters{Ville: ville})
}

// Create adds an artisan. The data is not validated here; callers run
// ValidateArtisanData first.
func (s *Service) Create(ctx context.Context, data CreateData) (*Artisan, error) {
	a, ok, err := fetch[Artisan](s.transport.Post(ctx, s.endpoints.Artisans, data))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.EmptyResponse("Failed to create artisan")
	}
	return &a, nil
}

// Update applies a partial update.
func (s *Service) Update(ctx context.Context, id int64, data UpdateData) (*Artisan, error) {
	a, ok, err := fetch[Artisan](s.transport.Patch(ctx, s.itemPath(id), data))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.EmptyResponse("Failed to update artisan")
	}
	return &a, nil
}

// Delete removes an artisan. No payload is expected.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.transport.Delete(ctx, s.itemPath(id)).Err()
}

// AddComment appends a comment to an artisan.
func (s *Service) AddComment(ctx context.Context, data comment.CreateData) (*comment.Comment, error) {
	c, ok, err := fetch[comment.Comment](s.transport.Post(ctx, s.endpoints.Commentaires, data))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.EmptyResponse("Failed to create comment")
	}
	return &c, nil
}

// Comments returns the comments of one artisan.
func (s *Service) Comments(ctx context.Context, artisanID int64) ([]comment.Comment, error) {
	a, err := s.Get(ctx, artisanID)
	if err != nil {
		return nil, err
	}
	return a.Commentaires, nil
}

// ExportJSON returns the full directory as served for offline use.
func (s *Service) ExportJSON(ctx context.Context) ([]*Artisan, error) {
	return s.list(ctx, s.endpoints.ExportJSON)
}

// Search fetches every artisan and keeps those whose name, trade, city or
// district contains term, ignoring case. The scan is client side.
func (s *Service) Search(ctx context.Context, term string) ([]*Artisan, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return matching(all, term), nil
}

// TopRated returns at most limit artisans by descending note.
func (s *Service) TopRated(ctx context.Context, limit int) ([]*Artisan, error) {
	if limit <= 0 {
		limit = DefaultTopRatedLimit
	}

	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Note > all[j].Note })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *Service) list(ctx context.Context, path string) ([]*Artisan, error) {
	items, ok, err := fetch[[]*Artisan](s.transport.Get(ctx, path))
	if err != nil {
		return nil, err
	}
	if !ok || items == nil {
		return []*Artisan{}, nil
	}
	return items, nil
}

// fetch converts an envelope into a decoded payload.
func fetch[T any](resp *client.Response) (T, bool, error) {
	var zero T
	if err := resp.Err(); err != nil {
		return zero, false, err
	}
	return client.Decode[T](resp)
}

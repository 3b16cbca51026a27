package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/riders-app/pinchazo-backend/internal/models"
)

// GomeroResolver computes the set of gomeros to notify about a new
// alert. Pure read-side computation; it never mutates anything.
type GomeroResolver struct {
	users UserDirectory

	// RadiusMeters of 0 disables the proximity filter and notifies every
	// available gomero (capped).
	RadiusMeters  float64
	MaxCandidates int
}

func NewGomeroResolver(users UserDirectory, radiusMeters float64, maxCandidates int) *GomeroResolver {
	return &GomeroResolver{
		users:         users,
		RadiusMeters:  radiusMeters,
		MaxCandidates: maxCandidates,
	}
}

// Candidates returns the ids of the gomeros eligible for notification,
// nearest first when location data is available. An empty result is a
// normal outcome, not an error.
func (r *GomeroResolver) Candidates(ctx context.Context, alert *models.PinchazoAlert) ([]int64, error) {
	gomeros, err := r.users.ListAvailableGomeros(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolver: could not list available gomeros: %w", err)
	}

	type ranked struct {
		id       int64
		distance float64
	}

	candidates := make([]ranked, 0, len(gomeros))
	for _, g := range gomeros {
		if g.LastLat == nil || g.LastLng == nil {
			// No known location: eligible, sorted after everyone who has one.
			candidates = append(candidates, ranked{id: g.ID, distance: math.MaxFloat64})
			continue
		}
		d := haversineMeters(alert.Latitude, alert.Longitude, *g.LastLat, *g.LastLng)
		if r.RadiusMeters > 0 && d > r.RadiusMeters {
			continue
		}
		candidates = append(candidates, ranked{id: g.ID, distance: d})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	if r.MaxCandidates > 0 && len(candidates) > r.MaxCandidates {
		candidates = candidates[:r.MaxCandidates]
	}

	ids := make([]int64, len(candidates))
	for i, c := range candidates {
		ids[i] = c.id
	}
	return ids, nil
}

const earthRadiusMeters = 6371000

// haversineMeters is the great-circle distance between two coordinates.
func haversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := rad(lat2 - lat1)
	dLng := rad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

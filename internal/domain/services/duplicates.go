package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/parcelworks/nameguard/internal/domain/entities"
	"github.com/parcelworks/nameguard/internal/domain/ports"
)

// DuplicateService flags candidate names that nearly duplicate an existing
// property name within a geographic radius.
type DuplicateService struct {
	index     ports.PropertyIndex
	threshold float64
}

// NewDuplicateService creates a duplicate checker with the given
// similarity threshold.
func NewDuplicateService(index ports.PropertyIndex, threshold float64) *DuplicateService {
	return &DuplicateService{
		index:     index,
		threshold: threshold,
	}
}

// CheckDuplicates queries the property index around the location and
// scores the candidate against every returned name. The verdict score is
// the maximum similarity found; conflicts holds the properties at or above
// the threshold, closest first. A provider failure returns a
// *entities.GeoLookupError, never a passing verdict.
func (s *DuplicateService) CheckDuplicates(ctx context.Context, candidate entities.CandidateName, location entities.Location, radiusMeters float64) (entities.CheckVerdict, []entities.ExistingProperty, error) {
	props, err := s.index.FindPropertiesNear(ctx, location.Lat, location.Lon, radiusMeters)
	if err != nil {
		var geoErr *entities.GeoLookupError
		if !errors.As(err, &geoErr) {
			err = &entities.GeoLookupError{Provider: "index", Err: err}
		}
		return entities.CheckVerdict{}, nil, err
	}

	var (
		bestScore float64
		bestName  string
		conflicts []entities.ExistingProperty
	)

	for _, p := range props {
		score := NameSimilarity(candidate.Normalized, entities.Normalize(p.Name))
		if score > bestScore || (score == bestScore && bestScore > 0 && p.Name < bestName) {
			bestScore, bestName = score, p.Name
		}
		if entities.Exceeds(score, s.threshold) {
			p.DistanceMeters = location.DistanceMeters(p.Position())
			conflicts = append(conflicts, p)
		}
	}

	sort.Slice(conflicts, func(i, j int) bool { return conflicts[i].DistanceMeters < conflicts[j].DistanceMeters })

	verdict := entities.CheckVerdict{
		Check: entities.CheckDuplicate,
		Score: bestScore,
	}
	switch {
	case len(props) == 0:
		verdict.Reason = fmt.Sprintf("no existing properties within %.0fm", radiusMeters)
	case entities.Exceeds(bestScore, s.threshold):
		verdict.Flagged = true
		verdict.MatchedTerm = bestName
		verdict.Reason = fmt.Sprintf("near-duplicate of %q within %.0fm (similarity %.2f)", bestName, radiusMeters, bestScore)
	default:
		verdict.Reason = fmt.Sprintf("closest name %q scored %.2f, below threshold %.2f", bestName, bestScore, s.threshold)
	}

	return verdict, conflicts, nil
}

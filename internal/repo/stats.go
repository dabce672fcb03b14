// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the aggregate query behind the
// review statistics endpoint.
package repo

import (
	"context"
	"math"

	"gorm.io/gorm"

	"github.com/smagen/go-recipe-backend/internal/domain"
)

// ReviewStats is the aggregate over a recipe's reviews: the mean rating
// (rounded to one decimal, 0 when there are no reviews), the total
// count, and a count per star value 1..5 keyed by the star.
type ReviewStats struct {
	AverageRating float64     `json:"average_rating"`
	TotalReviews  int64       `json:"total_reviews"`
	RatingCounts  map[int]int `json:"rating_counts"`
}

// GetReviewStats computes the aggregate for recipeSlug with a single
// grouped query. A recipe without reviews yields the zero aggregate
// (average 0, empty-but-initialized counts) rather than an error.
func GetReviewStats(ctx context.Context, db *gorm.DB, recipeSlug string) (*ReviewStats, error) {
	var rows []struct {
		Rating int
		N      int
	}
	err := db.WithContext(ctx).
		Model(&domain.Review{}).
		Select("rating, COUNT(*) AS n").
		Where("recipe_slug = ?", recipeSlug).
		Group("rating").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := &ReviewStats{RatingCounts: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}
	sum := 0
	for _, row := range rows {
		if row.Rating < 1 || row.Rating > 5 {
			continue
		}
		stats.RatingCounts[row.Rating] = row.N
		stats.TotalReviews += int64(row.N)
		sum += row.Rating * row.N
	}
	if stats.TotalReviews > 0 {
		// Round to one decimal, matching how the rating is displayed.
		avg := float64(sum) / float64(stats.TotalReviews)
		stats.AverageRating = math.Round(avg*10) / 10
	}
	return stats, nil
}

package entity

import (
	"sort"
	"time"
)

type Favorite struct {
	AnuncioID  string    `json:"anuncioId" firestore:"anuncioId"`
	AddedAt    time.Time `json:"addedAt" firestore:"addedAt"`
	OrderIndex *int      `json:"orderIndex,omitempty" firestore:"orderIndex,omitempty"`
}

// SortFavorites orders markers with an explicit index first (ascending), then
// the never-reordered ones by addition time, most recent first.
func SortFavorites(favs []Favorite) []Favorite {
	ordered := make([]Favorite, 0, len(favs))
	var legacy []Favorite
	for _, f := range favs {
		if f.OrderIndex != nil {
			ordered = append(ordered, f)
		} else {
			legacy = append(legacy, f)
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return *ordered[i].OrderIndex < *ordered[j].OrderIndex
	})
	sort.SliceStable(legacy, func(i, j int) bool {
		return legacy[i].AddedAt.After(legacy[j].AddedAt)
	})

	return append(ordered, legacy...)
}

func FavoriteIDs(favs []Favorite) []string {
	ids := make([]string, len(favs))
	for i, f := range favs {
		ids[i] = f.AnuncioID
	}
	return ids
}

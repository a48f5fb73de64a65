package newsportal

import "sort"

type NewsList []News

type Comments []Comment

// Latest orders news by date, most recent first, and keeps at most limit
// items. Equal dates fall back to the higher id first.
func (ll NewsList) Latest(limit int) NewsList {
	result := make(NewsList, len(ll))
	copy(result, ll)

	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].ID > result[j].ID
	})

	if limit >= 0 && len(result) > limit {
		result = result[:limit]
	}

	return result
}

// Chronological orders comments oldest first without truncation.
func (cc Comments) Chronological() Comments {
	result := make(Comments, len(cc))
	copy(result, cc)

	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].Created.Equal(result[j].Created) {
			return result[i].Created.Before(result[j].Created)
		}
		return result[i].ID < result[j].ID
	})

	return result
}

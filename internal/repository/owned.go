package repository

import "gorm.io/gorm"

// scopeOwner is the ownership filter shared by every list and create path:
// a caller only ever sees rows whose owner is the caller. Detail reads by id
// intentionally do not pass through here, matching the original behavior of
// unscoped retrieve-by-id.
func scopeOwner(db *gorm.DB, ownerID uint) *gorm.DB {
	return db.Where("user_id = ?", ownerID)
}

// dedupeIDs collapses duplicate ids while preserving first-seen order.
// Association sets are sets, so duplicate references collapse naturally.
func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

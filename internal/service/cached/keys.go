package cached

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/openbiodata/beacon-api/internal/beacon/model"
)

// KeyPrefix returns the namespace every cached key for an entry type
// lives under; invalidation deletes by this prefix.
func KeyPrefix(entryType string) string {
	return "beacon:" + entryType + ":"
}

// Key derives a deterministic cache key from the operation and the
// normalized request. Filters, pagination and the genomic query all feed
// the hash, so two requests collide only when a backend would answer them
// identically.
func Key(entryType, op string, body model.BeaconRequestBody) string {
	canon, err := json.Marshal(struct {
		Meta    model.RequestMeta     `json:"meta"`
		Query   *model.GenomicQuery   `json:"query,omitempty"`
		Filters []model.FilteringTerm `json:"filters,omitempty"`
	}{body.Meta, body.Query, body.Filters})
	if err != nil {
		// Marshal of these types cannot fail; keep the key valid anyway.
		canon = []byte(fmt.Sprintf("%+v", body))
	}
	sum := xxhash.Sum64(canon)
	return fmt.Sprintf("%s%s:%016x", KeyPrefix(entryType), op, sum)
}

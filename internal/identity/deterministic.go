package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// ContainerUUID derives the canonical identifier for a container code such as "Cen-001".
func ContainerUUID(code string) uuid.UUID {
	return UUID("go-wasteops:container:" + strings.TrimSpace(code))
}

// NeighborhoodUUID derives the canonical identifier for a neighborhood key.
func NeighborhoodUUID(key string) uuid.UUID {
	return UUID("go-wasteops:neighborhood:" + strings.ToLower(strings.TrimSpace(key)))
}

// CollectionRecordUUID derives an identifier for a daily tonnage record so
// re-imports of the same date/category pair stay idempotent.
func CollectionRecordUUID(date, category string) uuid.UUID {
	return UUID("go-wasteops:collection:" + strings.TrimSpace(date) + ":" + strings.ToLower(strings.TrimSpace(category)))
}

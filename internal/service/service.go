// Package service implements the business logic behind the domain service
// interfaces, on top of the repository layer.
package service

import (
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/denizgunduz/pazar/internal/domain"
)

// parseUUID converts a path/payload ID into a pgtype.UUID, rejecting
// malformed values before they reach the database.
func parseUUID(id string) (pgtype.UUID, error) {
	var u pgtype.UUID
	if err := u.Scan(id); err != nil {
		return u, domain.Errorf(domain.EINVALID, "service.parseUUID", "invalid id: %q", id)
	}
	return u, nil
}

// uuidString renders a pgtype.UUID for IDs leaving the service layer.
func uuidString(u pgtype.UUID) string {
	v, err := u.Value()
	if err != nil || v == nil {
		return ""
	}
	str, _ := v.(string)
	return str
}

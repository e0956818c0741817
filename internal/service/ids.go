package service

import (
	"errors"

	"github.com/google/uuid"
)

// ErrInvalidMemberID is returned for member identifiers that are not UUIDs.
var ErrInvalidMemberID = errors.New("member id is not a valid UUID")

// ValidateMemberID checks that id parses as a UUID before any repository
// query is issued with it.
func ValidateMemberID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidMemberID
	}
	return nil
}

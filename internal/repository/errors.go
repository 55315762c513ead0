package repository

import "errors"

// ErrDuplicate is returned when an insert violates one of the unique indexes
// (payments.transactionId, memberships clubId+memberEmail, users.email,
// eventRegistrations eventId+memberEmail). The service layer turns it into
// the matching idempotent outcome.
var ErrDuplicate = errors.New("duplicate key")

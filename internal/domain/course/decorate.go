package course

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Decorative fields (status, duration) are not part of the remote record.
// They are derived from the record id with xxhash so that two fetches of the
// same record always agree, instead of being re-rolled from a fresh random
// source on every mapping call.

const (
	statusSeed   = "course-status:"
	durationSeed = "course-duration:"

	maxDurationWeeks = 12
)

// DeriveStatus returns the stable decorative status for a record id.
func DeriveStatus(id int) Status {
	h := xxhash.Sum64String(fmt.Sprintf("%s%d", statusSeed, id))
	return Statuses[h%uint64(len(Statuses))]
}

// DeriveDuration returns the stable decorative duration label for a record
// id, in the range "1 weeks" to "12 weeks". The plural is kept even for a
// single week to match the catalog's display contract.
func DeriveDuration(id int) string {
	h := xxhash.Sum64String(fmt.Sprintf("%s%d", durationSeed, id))
	weeks := h%maxDurationWeeks + 1
	return fmt.Sprintf("%d weeks", weeks)
}

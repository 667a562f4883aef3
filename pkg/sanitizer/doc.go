// Package sanitizer normalizes client-supplied reservation fields before
// validation and persistence. Holder identity is compared string-for-string
// by the uniqueness rule, so the same logical client must always normalize to
// the same stored value.
package sanitizer

package services

import (
	"log"
)

// bestEffort runs a non-critical cleanup or regeneration step. Errors are
// logged and swallowed so the owning operation never fails on them; the
// database row is the operation's source of truth.
func bestEffort(op string, fn func() error) {
	if err := fn(); err != nil {
		log.Printf("WARN: %s: %v", op, err)
	}
}

// Package seed holds the conventions shared by the seeder and the load generator.
package seed

import "fmt"

// FirstAccountID is the id of the first seeded account. Seeded ids are consecutive.
const FirstAccountID int64 = 10_000_001

// HolderName is the holder bound to a seeded account.
func HolderName(accountID int64) string {
	return fmt.Sprintf("holder-%d", accountID)
}

// AccountID returns the id of the i-th seeded account, starting at zero.
func AccountID(i int) int64 {
	return FirstAccountID + int64(i)
}

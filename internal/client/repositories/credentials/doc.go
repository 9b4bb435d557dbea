// Package credentials provides the durable authstate.CredentialStore
// implementations: SQLiteStore, backed by the local client database, and
// MemoryStore for tests and short-lived processes. SealedStore wraps a
// store so values are encrypted under a passphrase.
//
// Entries carry an absolute expiry. An expired entry reads as absent, and
// SQLiteStore deletes it on the read that discovers it.
//
// Usage:
//
//	db, err := credentials.Open(ctx, "campaignkeeper.db")
//	if err != nil { ... }
//	defer db.Close()
//	auth := authstate.New(credentials.NewSQLiteStore(db))
package credentials

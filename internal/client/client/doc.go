// Package client contains the backend collaborators of the ThumbKeeper
// client.
//
// # Overview
//
// The package declares the contracts the session core consumes
// (AuthProvider, ProfileTable, ObjectStorage, ThumbnailTable and Generator)
// and ships implementations for them:
//  1. LocalAuthProvider keeps accounts in the local database, hashes
//     passwords with Argon2id and issues HS256 JWT sessions that survive
//     restarts through the metadata table.
//  2. HTTPGenerator calls the generation function service.
//  3. Downloader fetches generated images.
//
// ObjectStorage is satisfied by s3x.Storage, which the generation service
// uses as well.
//
// Profile and thumbnail tables are the SQL repositories returned by
// repomanager; OpenDatabase opens the configured database and applies the
// embedded goose migrations.
//
// # Error Handling
//
// Provider failures are *common.AuthError values with a stable Code
// (CodeInvalidCredentials, CodeUserAlreadyExists, CodeWeakPassword).
// Storage and transport failures are wrapped with fmt.Errorf and can be
// matched with errors.Is against the sentinels in this package.
//
// All implementations are safe for concurrent use and honor context
// cancellation.
package client

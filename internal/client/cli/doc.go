// Package cli implements the interactive ThumbKeeper terminal client.
//
// The REPL reads one command per line and dispatches it to App. App talks
// to the session model only through its public methods and snapshots;
// rendering is plain text on App's writer.
//
// Commands
//
//	Not logged in:
//	  register, login, help, exit | quit
//
//	Logged in:
//	  generate, gallery, history, download [n], profile, avatar,
//	  delete, logout, help, exit | quit
package cli

// Package history records finished merges in a small SQLite database under
// the log directory.
//
// The store is append-mostly: every merge, successful or not, writes one row
// when it finishes. `chapterize history` lists the rows and can clear them.
// Recording is best effort from the merge's point of view; callers log write
// failures and carry on.
package history

// Package lock keeps two processes from opening the same hdb files at once.
package lock

// Suffix appended to the guarded path to form the lock file name
const LockFileExt = ".lock"

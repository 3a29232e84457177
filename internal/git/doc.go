// Package git keeps a local checkout of a remote documentation repository in
// sync and reports the commit it was built from.
package git

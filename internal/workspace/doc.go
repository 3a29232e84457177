// Package workspace manages the directory a remote docs checkout lives in.
//
// Ephemeral workspaces are created under a base directory and removed on
// Cleanup. Persistent workspaces use a fixed path that survives between runs
// so later syncs only fetch new commits.
package workspace

// Package arcade provides the location model for the closest-arcade watcher.
//
// The arcade package holds the records extracted from the locator page, the observer
// position they are ranked against, the persisted closest result, and the identity-based
// change detection that decides whether a notification is due.
package arcade

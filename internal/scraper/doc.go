// Package scraper fetches the arcade locator page and extracts location records from it.
//
// The locator page is unstructured: every arcade is a list item whose name and address
// lines share one label marker, and whose details link or form action embeds the shop
// identifier (sid=NNN) and, on some pages, the map position (@lat,lon). Pages without
// positions print a distance from the searched origin next to the address instead.
// Fragments that are missing a required field are skipped one by one.
package scraper

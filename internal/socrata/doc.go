// Package socrata fetches food truck schedule records from a Socrata
// open-data endpoint (data.sfgov.org) one $limit/$offset window at a time.
package socrata

// Command fitcoach is the CLI and API daemon for the video playlist
// resolution engine: serve the HTTP build endpoint, build one playlist from
// a workout file, and manage the clip catalog.
package main

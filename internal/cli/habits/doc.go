// Package habits holds the CLI commands that read and change habits.
package habits

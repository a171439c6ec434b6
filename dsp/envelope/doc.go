// Package envelope provides an attack/release envelope follower.
package envelope

// Package window provides cosine-sum analysis windows for spectral
// measurements.
package window

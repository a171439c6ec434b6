// Package spatial places a mono source in 3-D space relative to a set of
// listening positions.
//
// Spatializer derives one delay tap per destination from the distance to
// the source: the tap delay is the acoustic travel time and the tap gain
// follows a near/far roll-off curve. Each tap is low-passed in proportion to
// its gain to approximate air absorption.
package spatial

// Package takt implements the deterministic scheduling core: the diagonal
// takt grid generator, trade-stacking detection, buffer computation and
// flowline chart data. All functions are pure and safe for concurrent use.
package takt

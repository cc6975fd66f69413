// Package spectrum computes windowed magnitude spectra of real signals and
// compares band energy between two signals.
//
// Forward transforms use algo-fft; magnitude extraction uses the SIMD
// kernels of algo-vecmath.
package spectrum

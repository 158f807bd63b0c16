// Package analysis provides level metering shared between the audio thread and
// non-real-time observers.
//
// PeakMeter follows the output with an instant attack and an exponential fall
// whose weight is fixed per session from the sample rate and decay time.
// Observers poll Load or LoadDB at any rate; the audio thread publishes with a
// single relaxed atomic store per frame and skips publishing entirely while
// nobody observes.
package analysis

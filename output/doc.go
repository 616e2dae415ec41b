// Package output places generated documents next to their input and writes
// them without ever exposing a partially written file.
//
// Every file of one generation is first staged as a temporary file in its
// target directory. Only when all of them are fully written are they renamed
// into place. A failure while staging removes the staged files; a failure
// while renaming also puts back the targets already replaced.
package output

// Package gofer implements the batch file-transfer engine described in
// the package's design notes: a caller builds a slice of *Request
// values, hands them to an *Engine's StartDownload or StartUpload, and
// receives lifecycle notifications (started, progress, completed,
// failed) through callbacks registered on the Engine. Only one batch may
// be active on a given Engine at a time.
package gofer

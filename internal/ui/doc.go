package ui

// Package ui contains the Fyne-based desktop user interface for the
// application. It submits download requests to the download service and
// renders live task state from the service's event stream.

package model

// Package model defines domain data structures shared across the app: download
// requests, tasks, status enums, and the events emitted to observers. Structures
// are designed for direct binding in the UI and explicit state transitions.

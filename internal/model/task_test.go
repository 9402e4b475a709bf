package model

import "testing"

func TestGetDisplayTitle(t *testing.T) {
	tests := []struct {
		name     string
		task     Task
		expected string
	}{
		{
			name:     "prefers title",
			task:     Task{Title: "My Clip", OutputPath: "/dl/other.mp4", URL: "https://example.com/v/1"},
			expected: "My Clip",
		},
		{
			name:     "url-like title falls through to filename",
			task:     Task{Title: "https://example.com/v/1", OutputPath: "/dl/clip name.mp4"},
			expected: "clip name",
		},
		{
			name:     "windows separators in output path",
			task:     Task{OutputPath: `C:\dl\clip.mp4`},
			expected: "clip",
		},
		{
			name:     "falls back to url",
			task:     Task{URL: "https://example.com/v/1"},
			expected: "https://example.com/v/1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.GetDisplayTitle(); got != tt.expected {
				t.Errorf("Expected '%s', got '%s'", tt.expected, got)
			}
		})
	}
}

func TestFileSizeText(t *testing.T) {
	tests := []struct {
		size     int64
		expected string
	}{
		{0, "—"},
		{512, "512 B"},
		{2048, "2.0 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
	}

	for _, tt := range tests {
		task := Task{FileSize: tt.size}
		if got := task.FileSizeText(); got != tt.expected {
			t.Errorf("FileSizeText(%d): expected '%s', got '%s'", tt.size, tt.expected, got)
		}
	}
}

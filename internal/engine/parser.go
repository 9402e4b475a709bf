package engine

import (
	"regexp"
	"strconv"
	"strings"
)

// Line-prefix markers of the engine's textual output. This is a best-effort
// contract with the engine's --newline progress format and may need updating
// across engine versions.
const (
	DestinationMarker = "[download] Destination:"
	ErrorMarker       = "ERROR:"
)

// ProcessingMarkers prefix the engine's post-download merge/extract phases
var ProcessingMarkers = []string{"[Merger]", "[ExtractAudio]"}

var (
	percentRe = regexp.MustCompile(`(\d+(?:\.\d+)?)%`)
	speedRe   = regexp.MustCompile(`\s(\S+/s)`)
	etaRe     = regexp.MustCompile(`ETA\s+(\S+)`)
)

// SignalKind tags what a parsed line means
type SignalKind int

const (
	// SignalNone means the line carried nothing of interest
	SignalNone SignalKind = iota

	// SignalDestination announces the engine's output file path
	SignalDestination

	// SignalPercent is a progress update with optional speed and ETA
	SignalPercent

	// SignalProcessing marks the start of the merge/remux phase
	SignalProcessing

	// SignalError is an explicit fatal error line
	SignalError
)

// Signal is the structured result of parsing one output line
type Signal struct {
	Kind SignalKind

	// Path is set for SignalDestination
	Path string

	// Percent is set for SignalPercent; HasSpeed/HasETA gate the optional
	// fields so absent tokens are omitted rather than defaulted.
	Percent  float64
	Speed    string
	HasSpeed bool
	ETA      string
	HasETA   bool

	// Message is set for SignalError
	Message string
}

// ParseLine derives zero or one structured signal from a single line of the
// engine's stdout or stderr. Unrecognized lines yield SignalNone.
func ParseLine(line string) Signal {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Signal{Kind: SignalNone}
	}

	if strings.HasPrefix(trimmed, ErrorMarker) {
		return Signal{Kind: SignalError, Message: trimmed}
	}

	if strings.HasPrefix(trimmed, DestinationMarker) {
		path := strings.TrimSpace(strings.TrimPrefix(trimmed, DestinationMarker))
		if path == "" {
			return Signal{Kind: SignalNone}
		}
		return Signal{Kind: SignalDestination, Path: path}
	}

	for _, marker := range ProcessingMarkers {
		if strings.HasPrefix(trimmed, marker) {
			return Signal{Kind: SignalProcessing}
		}
	}

	if m := percentRe.FindStringSubmatch(trimmed); m != nil {
		percent, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return Signal{Kind: SignalNone}
		}
		sig := Signal{Kind: SignalPercent, Percent: clampPercent(percent)}
		if sm := speedRe.FindStringSubmatch(trimmed); sm != nil {
			sig.Speed = sm[1]
			sig.HasSpeed = true
		}
		if em := etaRe.FindStringSubmatch(trimmed); em != nil {
			sig.ETA = em[1]
			sig.HasETA = true
		}
		return sig
	}

	return Signal{Kind: SignalNone}
}

func clampPercent(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

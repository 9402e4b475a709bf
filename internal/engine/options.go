package engine

import (
	"github.com/google/shlex"
	"github.com/pkg/errors"

	"github.com/ytget/mediagrab/internal/model"
)

// Options is the typed configuration converted into the engine's flag list at
// the spawn boundary. Zero-value fields are omitted from the command line.
type Options struct {
	Kind model.MediaKind

	// Format is the engine's format selector (-f), empty for engine default.
	Format string

	// OutputTemplate is the -o value, with the %(ext)s placeholder intact.
	OutputTemplate string

	// VideoContainer is the merge target for video downloads (e.g. "mp4").
	VideoContainer string

	// AudioContainer is the extraction target for audio downloads (e.g. "m4a").
	AudioContainer string

	Overwrite bool

	// RemuxPath is the remux engine executable. Empty means the remux engine
	// is unavailable and all post-processing flags are dropped.
	RemuxPath string

	// ExtraArgs is a raw user-configured argument string, split shell-style.
	ExtraArgs string
}

// Args converts the options into the engine's argument list, with the target
// URL last.
func (o Options) Args(url string) ([]string, error) {
	args := []string{"--newline", "--no-playlist"}

	if o.OutputTemplate != "" {
		args = append(args, "-o", o.OutputTemplate)
	}
	if o.Format != "" {
		args = append(args, "-f", o.Format)
	}
	if o.Overwrite {
		args = append(args, "--force-overwrites")
	}

	// Post-processing needs the remux engine; without it the raw download is
	// kept in whatever container the source provides.
	if o.RemuxPath != "" {
		args = append(args, "--ffmpeg-location", o.RemuxPath)
		switch o.Kind {
		case model.MediaAudio:
			if o.AudioContainer != "" {
				args = append(args, "-x", "--audio-format", o.AudioContainer)
			}
		default:
			if o.VideoContainer != "" {
				args = append(args, "--merge-output-format", o.VideoContainer)
			}
		}
	}

	if o.ExtraArgs != "" {
		extra, err := shlex.Split(o.ExtraArgs)
		if err != nil {
			return nil, errors.Wrap(err, "invalid extra engine arguments")
		}
		args = append(args, extra...)
	}

	return append(args, url), nil
}

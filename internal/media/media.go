// internal/media/media.go
//
// Resolves logical media names ("HOT", "WIN", "STEAM") to hosted URLs.
// The prompt layer never builds URLs itself.

package media

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrUnknownAsset is returned for names with no registered file.
var ErrUnknownAsset = errors.New("unknown asset")

// Image card names.
const (
	ImageCold  = "COLD"
	ImageCool  = "COOL"
	ImageWarm  = "WARM"
	ImageHot   = "HOT"
	ImageIntro = "INTRO"
	ImageWin   = "WIN"
)

// Audio cue names.
const (
	AudioSteam     = "STEAM"
	AudioSteamOnly = "STEAM_ONLY"
	AudioWin       = "WIN"
)

var images = map[string]string{
	ImageCold:  "COLD.gif",
	ImageCool:  "COOL.gif",
	ImageWarm:  "WARM.gif",
	ImageHot:   "HOT.gif",
	ImageIntro: "INTRO.gif",
	ImageWin:   "WIN.gif",
}

var audio = map[string]string{
	AudioSteam:     "Earcon_Steam.wav",
	AudioSteamOnly: "Earcon_SteamOnly.wav",
	AudioWin:       "Earcon_YouWin.wav",
}

// Resolver maps names to URLs under a base URL.
type Resolver struct {
	base string
}

// New returns a resolver rooted at baseURL (e.g. https://cdn.example.com/genie).
func New(baseURL string) (*Resolver, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse asset base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("asset base url %q must be absolute", baseURL)
	}
	return &Resolver{base: strings.TrimRight(u.String(), "/")}, nil
}

// BaseURLForProject returns the default hosting location for a project id.
func BaseURLForProject(projectID string) string {
	return fmt.Sprintf("https://%s.appspot.com", projectID)
}

// Image returns the URL of an image card asset.
func (r *Resolver) Image(name string) (string, error) {
	return r.resolve(images, "images", name)
}

// Audio returns the URL of an audio cue asset.
func (r *Resolver) Audio(name string) (string, error) {
	return r.resolve(audio, "audio", name)
}

func (r *Resolver) resolve(files map[string]string, dir, name string) (string, error) {
	file, ok := files[name]
	if !ok {
		return "", fmt.Errorf("%w: %s %q", ErrUnknownAsset, dir, name)
	}
	return url.JoinPath(r.base, dir, file)
}

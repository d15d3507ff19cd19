package config

import (
	"fmt"
	"strings"

	"github.com/pion/webrtc/v4"
)

// ICEServers builds the ICE server list handed to clients. STUN URLs
// are grouped into one credential-free entry; TURN URLs share the
// configured long-term credential.
func (c *Config) ICEServers() ([]webrtc.ICEServer, error) {
	var out []webrtc.ICEServer

	if len(c.StunURLs) > 0 {
		urls, err := checkICEURLs(c.StunURLs, "stun")
		if err != nil {
			return nil, err
		}
		out = append(out, webrtc.ICEServer{URLs: urls})
	}

	if len(c.TurnURLs) > 0 {
		urls, err := checkICEURLs(c.TurnURLs, "turn")
		if err != nil {
			return nil, err
		}
		if c.TurnUsername == "" || c.TurnCredential == "" {
			return nil, fmt.Errorf("turn_urls configured without turn_username/turn_credential")
		}
		out = append(out, webrtc.ICEServer{
			URLs:       urls,
			Username:   c.TurnUsername,
			Credential: c.TurnCredential,
		})
	}

	return out, nil
}

func checkICEURLs(raw []string, kind string) ([]string, error) {
	out := make([]string, 0, len(raw))
	for _, u := range raw {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		if !strings.HasPrefix(u, kind+":") && !strings.HasPrefix(u, kind+"s:") {
			return nil, fmt.Errorf("%s url %q: unexpected scheme", kind, u)
		}
		out = append(out, u)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no usable %s urls", kind)
	}
	return out, nil
}

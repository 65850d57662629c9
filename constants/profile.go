package constants

import (
	"strings"
)

// Profile is a display/installation category driving the estimator's rate
// table and conditional line-item bundles.
type Profile string

const (
	ProfileOutdoorMarquee Profile = "outdoor_marquee"
	ProfileCenterHung     Profile = "center_hung"
	ProfileLobbyAtrium    Profile = "lobby_atrium"
	ProfileIndoorStandard Profile = "indoor_standard"
)

var profileLabels = map[Profile]string{
	ProfileOutdoorMarquee: "Outdoor Marquee",
	ProfileCenterHung:     "Center-Hung / Scoreboard",
	ProfileLobbyAtrium:    "Lobby / Atrium",
	ProfileIndoorStandard: "Indoor Standard",
}

func (p Profile) Label() string {
	if l, ok := profileLabels[p]; ok {
		return l
	}
	return string(p)
}

func CanonicalizeProfile(input string) (Profile, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	switch normalized {
	case "outdoor_marquee", "outdoor marquee", "marquee":
		return ProfileOutdoorMarquee, true
	case "center_hung", "center hung", "centerhung", "scoreboard":
		return ProfileCenterHung, true
	case "lobby_atrium", "lobby", "atrium":
		return ProfileLobbyAtrium, true
	case "indoor_standard", "indoor standard", "indoor":
		return ProfileIndoorStandard, true
	}
	return ProfileIndoorStandard, false
}

package catalog

import (
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/vibe-guide/internal/models"
	"github.com/vibe-guide/internal/types"
)

// FormatCoordinates renders "<lat>° N, <lng>° E" with five decimals
func FormatCoordinates(lat, lng float64) string {
	return fmt.Sprintf("%.5f° N, %.5f° E", round5(lat), round5(lng))
}

// round5 rounds ties away from zero; %.5f alone rounds them to even
func round5(v float64) float64 {
	return math.Round(v*1e5) / 1e5
}

// uriComponent leaves the marks !'()* and spaces readable, as a URI component
var uriComponent = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// ShareText is the message handed to the platform share sheet
func ShareText(title string, lat, lng float64) string {
	return fmt.Sprintf("%s\n%s\n", title, FormatCoordinates(lat, lng))
}

// ShareLocation is ShareText for a catalog location
func ShareLocation(loc models.Location) string {
	return ShareText(loc.Title, loc.Lat, loc.Lng)
}

// MapsURL builds the "open in maps" link for the given platform
func MapsURL(platform types.Platform, loc models.Location) string {
	q := fmt.Sprintf("%v,%v", loc.Lat, loc.Lng)
	if platform == types.PlatformAndroid {
		label := loc.Title
		if label == "" {
			label = "Place"
		}
		return fmt.Sprintf("geo:%s?q=%s(%s)", q, q, uriComponent.Replace(url.QueryEscape(label)))
	}
	return fmt.Sprintf("http://maps.apple.com/?q=%s&ll=%s", q, q)
}

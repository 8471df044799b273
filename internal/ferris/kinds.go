package ferris

import (
	"golang.org/x/text/language"
)

// Marker classes recognised on code blocks.
const (
	MarkerDoesNotCompile     = "does_not_compile"
	MarkerPanics             = "panics"
	MarkerNotDesiredBehavior = "not_desired_behavior"
)

// Kind is one annotation variant: the class that selects code blocks and
// the tooltip shown on the icon.
type Kind struct {
	Marker string
	Label  string
}

// IconPath returns the asset reference for the kind's icon.
func (k Kind) IconPath() string {
	return IconBasePath + k.Marker + IconExt
}

// markers is the closed set of kinds in the order they are attached.
var markers = [...]string{
	MarkerDoesNotCompile,
	MarkerPanics,
	MarkerNotDesiredBehavior,
}

// DefaultLocale is used when no locale is configured or the requested one
// has no catalog.
var DefaultLocale = language.MustParse("zh-TW")

var catalogs = map[language.Tag]map[string]string{
	DefaultLocale: {
		MarkerDoesNotCompile:     "此程式碼無法編譯！",
		MarkerPanics:             "此程式碼會恐慌！",
		MarkerNotDesiredBehavior: "此程式碼沒有產生預期的行為。",
	},
	language.English: {
		MarkerDoesNotCompile:     "This code does not compile!",
		MarkerPanics:             "This code panics!",
		MarkerNotDesiredBehavior: "This code does not produce the desired behavior.",
	},
}

// supported lists catalog tags with the default first, which makes it the
// matcher's fallback.
var supported = []language.Tag{DefaultLocale, language.English}

var matcher = language.NewMatcher(supported)

// ResolveLocale picks the catalog tag closest to locale. An empty or
// unparseable locale resolves to DefaultLocale.
func ResolveLocale(locale string) language.Tag {
	if locale == "" {
		return DefaultLocale
	}
	desired, _, err := language.ParseAcceptLanguage(locale)
	if err != nil || len(desired) == 0 {
		return DefaultLocale
	}
	_, idx, conf := matcher.Match(desired...)
	if conf == language.No {
		return DefaultLocale
	}
	return supported[idx]
}

// Kinds returns the three kinds in attach order with labels for locale.
// The returned slice is a fresh copy.
func Kinds(locale string) []Kind {
	labels := catalogs[ResolveLocale(locale)]
	out := make([]Kind, 0, len(markers))
	for _, m := range markers {
		out = append(out, Kind{Marker: m, Label: labels[m]})
	}
	return out
}

// Markers returns the marker classes in attach order.
func Markers() []string {
	return append([]string(nil), markers[:]...)
}

// SupportedLocales returns the catalog tags as strings.
func SupportedLocales() []string {
	out := make([]string, len(supported))
	for i, t := range supported {
		out[i] = t.String()
	}
	return out
}

// Package language resolves ISO 639-1 language codes to display names and region codes.
package language

import (
	"sort"
	"strings"

	"github.com/example/vocabquiz/pkg/models"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// DefaultRegion is returned for recognized languages without a region mapping
const DefaultRegion = "default"

// ISO 639-1 codes accepted as test languages
const isoCodes = "aa ab ae af ak am an ar as av ay az ba be bg bi bm bn bo br bs ca ce ch co cr cs cu cv cy " +
	"da de dv dz ee el en eo es et eu fa ff fi fj fo fr fy ga gd gl gn gu gv ha he hi ho hr ht hu hy hz " +
	"ia id ie ig ii ik io is it iu ja jv ka kg ki kj kk kl km kn ko kr ks ku kv kw ky la lb lg li ln lo " +
	"lt lu lv mg mh mi mk ml mn mr ms mt my na nb nd ne ng nl nn no nr nv ny oc oj om or os pa pi pl ps " +
	"pt qu rm rn ro ru rw sa sc sd se sg si sk sl sm sn so sq sr ss st su sv sw ta te tg th ti tk tl tn " +
	"to tr ts tt tw ty ug uk ur uz ve vi vo wa wo xh yi yo za zh zu"

// region code used for the flag shown next to a language
var regions = map[string]string{
	"en": "us", "es": "es", "fr": "fr", "de": "de", "it": "it", "pt": "pt", "ru": "ru", "zh": "cn",
	"ja": "jp", "ko": "kr", "ar": "sa", "hi": "in", "ms": "my", "th": "th", "tr": "tr", "nl": "nl",
	"sv": "se", "no": "no", "da": "dk", "fi": "fi", "pl": "pl", "hu": "hu", "cs": "cz", "sk": "sk",
	"el": "gr", "he": "il", "ur": "pk", "bn": "bd", "gu": "in", "kn": "in", "ml": "in", "mr": "in",
	"pa": "in", "ta": "in", "te": "in", "fa": "ir", "uk": "ua", "ro": "ro", "vi": "vn", "id": "id",
	"mn": "mn", "sr": "rs", "bg": "bg", "hr": "hr", "sl": "si", "lt": "lt", "lv": "lv", "et": "ee",
	"ka": "ge", "hy": "am", "sq": "al", "mk": "mk", "az": "az", "eu": "es", "ca": "es", "gl": "es",
	"af": "za", "sw": "tz", "am": "et", "zu": "za", "xh": "za", "st": "za", "tn": "bw", "sn": "zw",
	"rw": "rw", "so": "so", "ig": "ng", "yo": "ng", "ha": "ng", "mg": "mg",
}

var (
	names   = make(map[string]string)
	options []models.LanguageOption
)

func init() {
	namer := display.English.Languages()
	for _, code := range strings.Fields(isoCodes) {
		name := namer.Name(language.Make(code))
		if name == "" {
			name = strings.ToUpper(code)
		}
		names[code] = name
		options = append(options, models.LanguageOption{Code: code, Name: name})
	}
	sort.Slice(options, func(i, j int) bool {
		if options[i].Name == options[j].Name {
			return options[i].Code < options[j].Code
		}
		return options[i].Name < options[j].Name
	})
}

// Normalize lowercases and trims a language code
func Normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// IsRecognized reports whether code belongs to the closed set of accepted codes
func IsRecognized(code string) bool {
	_, ok := names[code]
	return ok
}

// Resolve maps a code to its display name and region code. Unknown codes resolve to the
// code itself with the default region.
func Resolve(code string) models.LanguageDetails {
	details := models.LanguageDetails{
		Code:        code,
		Name:        code,
		CountryCode: DefaultRegion,
	}
	if name, ok := names[code]; ok {
		details.Name = name
	}
	if region, ok := regions[code]; ok {
		details.CountryCode = region
	}
	return details
}

// Options returns every accepted language sorted by display name
func Options() []models.LanguageOption {
	out := make([]models.LanguageOption, len(options))
	copy(out, options)
	return out
}

// Decorate attaches resolved language details to a test
func Decorate(test models.Test) models.TestWithLanguages {
	return models.TestWithLanguages{
		Test:                test,
		LanguageFromDetails: Resolve(test.LanguageFrom),
		LanguageToDetails:   Resolve(test.LanguageTo),
	}
}

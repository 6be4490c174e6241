package language

import "fmt"

// Language is one entry of the multi-language panel.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

var supported = []Language{
	{Code: "en", Name: "English"},
	{Code: "hi", Name: "Hindi"},
	{Code: "ta", Name: "Tamil"},
	{Code: "te", Name: "Telugu"},
	{Code: "bn", Name: "Bengali"},
	{Code: "mr", Name: "Marathi"},
	{Code: "gu", Name: "Gujarati"},
	{Code: "kn", Name: "Kannada"},
	{Code: "ml", Name: "Malayalam"},
	{Code: "pa", Name: "Punjabi"},
	{Code: "ur", Name: "Urdu"},
	{Code: "es", Name: "Spanish"},
}

var samples = map[string]string{
	"en": "This contract contains standard terms and conditions with moderate risk factors.",
	"hi": "इस अनुबंध में मानक नियम और शर्तें हैं जिसमें मध्यम जोखिम कारक हैं।",
	"ta": "இந்த ஒப்பந்தத்தில் மிதமான ஆபத்து காரணிகளுடன் நிலையான விதிமுறைகள் உள்ளன।",
	"te": "ఈ ఒప్పందంలో మధ్యస్థ ప్రమాద కారకాలతో ప్రామాణిక నియమాలు మరియు షరతులు ఉన్నాయి।",
}

// Supported returns the catalogue in display order.
func Supported() []Language {
	return append([]Language(nil), supported...)
}

// Lookup finds a language by its code.
func Lookup(code string) (Language, bool) {
	for _, l := range supported {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

// Sample returns the preview sentence for a language, or a placeholder when
// no sample translation exists.
func Sample(l Language) string {
	if s, ok := samples[l.Code]; ok {
		return s
	}
	return fmt.Sprintf("[Sample translation in %s]", l.Name)
}

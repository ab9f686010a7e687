package healthcheck

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// DefaultLocale is used when no hint locale is configured.
const DefaultLocale = "zh-TW"

// Catalog keys.
const (
	msgSetBaseURL   = "Please set %s first, for example:"
	msgAuthWallHint = "Hint: if you see a Google sign-in page, set the Web App access to \"Anyone\" or \"Anyone with the link\"."
)

// The first entry is the fallback for unmatched locales.
var supportedLocales = []language.Tag{
	language.TraditionalChinese,
	language.English,
}

var (
	localeMatcher = language.NewMatcher(supportedLocales)
	messages      = newCatalog()
)

func newCatalog() catalog.Catalog {
	entries := []struct {
		tag language.Tag
		key string
		msg string
	}{
		{language.TraditionalChinese, msgSetBaseURL, "請先設定 %s，例如："},
		{language.TraditionalChinese, msgAuthWallHint, "提示：若看到 Google 登入頁，請將 Web App 存取權設為『任何人』或『任何具備連結者』。"},
		{language.English, msgSetBaseURL, msgSetBaseURL},
		{language.English, msgAuthWallHint, msgAuthWallHint},
	}

	b := catalog.NewBuilder()
	for _, e := range entries {
		if err := b.SetString(e.tag, e.key, e.msg); err != nil {
			panic(err)
		}
	}

	return b
}

// MatchLocale returns the supported locale closest to the given BCP 47
// locale or Accept-Language string.
func MatchLocale(locale string) language.Tag {
	_, i := language.MatchStrings(localeMatcher, locale)
	return supportedLocales[i]
}

// NewPrinter creates a message printer for the given locale.
func NewPrinter(locale string) *message.Printer {
	return message.NewPrinter(MatchLocale(locale), message.Catalog(messages))
}

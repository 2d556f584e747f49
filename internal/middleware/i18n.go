// internal/middleware/i18n.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

// supportedLanguages lists the locales with translation files. The first
// entry is the fallback.
var supportedLanguages = []language.Tag{
	language.English,
	language.Russian,
}

var languageMatcher = language.NewMatcher(supportedLanguages)

func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("lang", MatchLanguage(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

// MatchLanguage picks the best supported language for an Accept-Language
// header value, e.g. "ru-RU,ru;q=0.9,en;q=0.8".
func MatchLanguage(header string) string {
	if header == "" {
		return "en"
	}

	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return "en"
	}

	_, index, confidence := languageMatcher.Match(tags...)
	if confidence == language.No {
		return "en"
	}
	base, _ := supportedLanguages[index].Base()
	return base.String()
}

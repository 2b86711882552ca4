package reldate

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-reldate/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// localizer is built on first use from the embedded English messages.
var localizer = sync.OnceValue(func() *i18n.Localizer {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc(config.LocaleExt, json.Unmarshal)
	if _, err := bundle.LoadMessageFileFS(localeFS, config.LocaleFileEN); err != nil {
		slog.Error(config.ErrLocaleLoad,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyFile, config.LocaleFileEN,
			config.LogKeyError, err,
		)
	}
	return i18n.NewLocalizer(bundle, config.DefaultLanguage)
})

// localize renders a message without plural forms. A missing message
// renders as its ID.
func localize(id string, data map[string]any) string {
	return render(&i18n.LocalizeConfig{MessageID: id, TemplateData: data})
}

// localizePlural renders a message that defines "one" and "other" forms.
func localizePlural(id string, count int, data map[string]any) string {
	return render(&i18n.LocalizeConfig{MessageID: id, TemplateData: data, PluralCount: count})
}

func render(lc *i18n.LocalizeConfig) string {
	msg, err := localizer().Localize(lc)
	if err != nil {
		slog.Debug(config.ErrLocalize,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, lc.MessageID,
			config.LogKeyError, err,
		)
		return lc.MessageID
	}
	return msg
}

// ordinal spells out small ordinals ("first") and falls back to numeric
// suffixes ("21st", "112th").
func ordinal(n int) string {
	id := config.TKeyOrdinalPrefix + strconv.Itoa(n)
	if msg, err := localizer().Localize(&i18n.LocalizeConfig{MessageID: id}); err == nil {
		return msg
	}
	abs := n
	if abs < 0 {
		abs = -abs
	}
	suffix := config.OrdinalTh
	if abs%100 < 11 || abs%100 > 13 {
		switch abs % 10 {
		case 1:
			suffix = config.OrdinalSt
		case 2:
			suffix = config.OrdinalNd
		case 3:
			suffix = config.OrdinalRd
		}
	}
	return fmt.Sprintf(config.FormatOrd, n, suffix)
}

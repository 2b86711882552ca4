package reldate_test

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-reldate/internal/config"
)

// TestI18nIntegrity ensures that every translation key defined in config.go
// exists in the embedded English messages, and that the JSON holds no
// message the code never asks for.
func TestI18nIntegrity(t *testing.T) {
	definedKeys := map[string]bool{}
	for _, k := range []string{
		config.TKeyStart,
		config.TKeyAdd,
		config.TKeySubtract,
		config.TKeyMoveTo,
		config.TKeyMoveNext,
		config.TKeyMovePrevious,
		config.TKeyIf,
		config.TKeyIfThen,
		config.TKeyIfElse,
		config.TKeyIfThenElse,
		config.TKeyCustomCondition,
		config.TKeyUnitYearNth,
		config.TKeyUnitNth,
		config.TKeyUnitDayOfWeekNth,
		config.TKeyUnitLastDayNth,
		config.TKeyUnitLastDayFirst,
		config.TKeyUnitYear,
		config.TKeyUnitMonth,
		config.TKeyUnitWeek,
		config.TKeyUnitDay,
		config.TKeyUnitHour,
		config.TKeyUnitMinute,
		config.TKeyUnitSecond,
		config.TKeyUnitMillisecond,
		config.TKeyUnitWeekday,
		config.TKeyUnitWeekendDay,
		config.TKeyUnitLastPrefix,
	} {
		definedKeys[k] = true
	}

	content, err := os.ReadFile(config.LocaleFileEN)
	require.NoError(t, err, "Must load %s", config.LocaleFileEN)

	var jsonMap map[string]any
	require.NoError(t, json.Unmarshal(content, &jsonMap), "JSON must be valid")

	for key := range definedKeys {
		_, exists := jsonMap[key]
		assert.Truef(t, exists, "Key '%s' defined in config.go is missing in the locale file", key)
	}

	for jsonKey := range jsonMap {
		if strings.HasPrefix(jsonKey, config.TKeyOrdinalPrefix) {
			continue
		}
		assert.Truef(t, definedKeys[jsonKey], "Key '%s' exists in the locale file but is never used", jsonKey)
	}
}
